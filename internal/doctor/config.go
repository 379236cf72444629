package doctor

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/util"
)

// ConfigFileCheck verifies that the config file exists.
type ConfigFileCheck struct {
	Path string
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run() CheckResult {
	info, err := os.Stat(c.Path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("No config file at %s", c.Path),
			Suggestion: "Run 'tessera-gen init' to write an example, or pass --config-file",
		}
	}
	if info.IsDir() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s is a directory", c.Path),
			Suggestion: "Point --config-file at a .yaml, .json, .toml or .hcl file",
		}
	}
	return pass(c.Name(), "Config file: %s", c.Path)
}

// ConfigSchemaCheck loads and validates the config file. File holds the
// result for later checks.
type ConfigSchemaCheck struct {
	Path string
	File *config.File
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run() CheckResult {
	f, err := config.Load(c.Path)
	if err != nil {
		return failFromError(c.Name(), err, "Check the syntax of "+c.Path)
	}
	c.File = f
	return pass(c.Name(), "%d graph template%s", len(f.Graphs), util.Pluralize(len(f.Graphs), "", "s"))
}

// MetadataCheck verifies the merged dashboard metadata can be pushed.
type MetadataCheck struct {
	Metadata config.Metadata
}

func (c *MetadataCheck) Name() string     { return "metadata" }
func (c *MetadataCheck) Category() string { return CategoryConfig }

func (c *MetadataCheck) Run() CheckResult {
	if err := config.ValidateMetadata(c.Metadata, true); err != nil {
		return failFromError(c.Name(), err, "")
	}
	if c.Metadata.Title == config.DefaultTitle {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Dashboard title is the default %q", config.DefaultTitle),
			Suggestion: "Set title in dashboard_metadata or pass --title",
		}
	}
	if c.Metadata.IsCreate() {
		return pass(c.Name(), "Push creates a new dashboard %q", c.Metadata.Title)
	}
	return pass(c.Name(), "Push replaces dashboard %s (%q)", c.Metadata.DashboardID, c.Metadata.Title)
}

// failFromError builds a failed result, keeping the suggestion of a
// structured error when it has one.
func failFromError(name string, err error, suggestion string) CheckResult {
	r := CheckResult{Name: name, Status: StatusFail, Message: err.Error(), Suggestion: suggestion}
	var tgErr *errors.Error
	if stderrors.As(err, &tgErr) {
		r.Message = tgErr.Message
		if tgErr.Cause != nil {
			r.Message += ": " + tgErr.Cause.Error()
		}
		if tgErr.Suggestion != "" {
			r.Suggestion = tgErr.Suggestion
		}
	}
	return r
}
