package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator instance.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks a parsed config file and returns structured error messages.
func Validate(f *File) error {
	if f == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try loading the configuration again.")
	}

	if len(f.Graphs) == 0 {
		return errors.New(errors.ErrConfig,
			"No graphs defined",
			"Add a 'dashboard_graphs' section with at least one graph template")
	}

	names := make([]string, 0, len(f.Graphs))
	for name := range f.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		g := f.Graphs[name]
		if err := getValidator().Struct(g); err != nil {
			return errors.WrapWithCode(formatValidationError(err), errors.ErrConfig,
				fmt.Sprintf("Graph '%s' is invalid", name),
				"Check the graph in the 'dashboard_graphs' section")
		}
	}

	if err := getValidator().Struct(f.Metadata); err != nil {
		return errors.WrapWithCode(formatValidationError(err), errors.ErrConfig,
			"dashboard_metadata is invalid",
			"Check the 'dashboard_metadata' section (layout is 'fixed' or 'fluid')")
	}

	for i, n := range f.Nodes {
		if strings.TrimSpace(n.Name) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Node group at position %d has an empty name", i),
				"Give every node group a name, like 'node: web-001--010'")
		}
	}

	return nil
}

// ValidateMetadata checks the final merged metadata. requireURL is set by
// commands that talk to the server.
func ValidateMetadata(m Metadata, requireURL bool) error {
	if requireURL && m.TesseraURL == "" {
		return errors.New(errors.ErrConfig,
			"No Tessera URL configured",
			"Pass --tessera-url, set TESSERA_GEN_TESSERA_URL, or add tessera-url to dashboard_metadata")
	}

	if m.TesseraURL != "" {
		if err := getValidator().Var(m.TesseraURL, "url"); err != nil {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a URL", m.TesseraURL),
				"Use a full URL like http://tessera.example.com:5000")
		}
	}

	if err := getValidator().Var(m.Layout, "oneof=fixed fluid"); err != nil {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown layout '%s'", m.Layout),
			"Layout must be 'fixed' or 'fluid'")
	}

	return nil
}

// formatValidationError turns validator errors into one readable error.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("'%s' is required", fieldName(e.Field())))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("'%s' must be one of: %s", fieldName(e.Field()), e.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("'%s' must be at least %s, got %v", fieldName(e.Field()), e.Param(), e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("'%s' failed on the '%s' check", fieldName(e.Field()), e.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// fieldName maps Go struct field names back to config keys.
func fieldName(field string) string {
	switch field {
	case "CellSpan":
		return "cellspan"
	case "ItemType":
		return "item_type"
	case "TesseraURL":
		return "tessera-url"
	case "DashboardID":
		return "dashboard-id"
	default:
		return strings.ToLower(field)
	}
}
