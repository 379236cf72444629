// Package render substitutes node values into query templates.
//
// Templates are logic-less: a placeholder is the node group name between
// double braces, optionally padded with spaces ({{node}} or {{ node }}).
// Placeholders for any other name render as the empty string.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

// Query renders tmpl with key bound to value.
func Query(tmpl, key, value string) (string, error) {
	t, err := fasttemplate.NewTemplate(tmpl, startTag, endTag)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrTemplate,
			"Malformed query template",
			"Every '{{' needs a matching '}}'")
	}

	out := t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if strings.TrimSpace(tag) != key {
			return 0, nil
		}
		return w.Write([]byte(value))
	})
	return out, nil
}

// Placeholders lists the distinct placeholder names used by tmpl, in order
// of first use.
func Placeholders(tmpl string) ([]string, error) {
	t, err := fasttemplate.NewTemplate(tmpl, startTag, endTag)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTemplate,
			"Malformed query template",
			"Every '{{' needs a matching '}}'")
	}

	var names []string
	seen := make(map[string]bool)
	t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		name := strings.TrimSpace(tag)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return 0, nil
	})
	return names, nil
}

// Unbound returns the placeholders of tmpl that key does not satisfy.
func Unbound(tmpl, key string) ([]string, error) {
	names, err := Placeholders(tmpl)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range names {
		if n != key {
			out = append(out, n)
		}
	}
	return out, nil
}

// Describe formats placeholder names for log messages.
func Describe(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("{{%s}}", n)
	}
	return strings.Join(parts, ", ")
}
