package config

import (
	"strings"
	"time"

	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared by flags, environment variables and dashboard_metadata.
const (
	KeyTesseraURL  = "tessera-url"
	KeyDashboardID = "dashboard-id"
	KeyLayout      = "layout"
	KeyTitle       = "title"
	KeyCategory    = "category"
	KeyTags        = "tags"
	KeyDryRun      = "dry-run"
	KeyTimeout     = "timeout"
)

// EnvPrefix prefixes every environment override, e.g. TESSERA_GEN_TITLE.
const EnvPrefix = "TESSERA_GEN"

// DefaultTimeout bounds each HTTP request to the Tessera API.
const DefaultTimeout = 30 * time.Second

var resolvedKeys = []string{
	KeyTesseraURL, KeyDashboardID, KeyLayout, KeyTitle, KeyCategory, KeyTags,
	KeyDryRun, KeyTimeout,
}

// Settings is everything a run needs beyond the parsed file: merged
// metadata and runtime switches.
type Settings struct {
	Metadata Metadata
	DryRun   bool
	Timeout  time.Duration
}

// Resolve merges defaults, the config file, TESSERA_GEN_* environment
// variables and command-line flags, in that order (later wins). Only flags
// the user actually set override lower layers. f and flags may be nil.
func Resolve(f *File, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault(KeyLayout, DefaultLayout)
	v.SetDefault(KeyTitle, DefaultTitle)
	v.SetDefault(KeyCategory, DefaultCategory)
	v.SetDefault(KeyTags, []string{})
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyTimeout, DefaultTimeout)

	if f != nil {
		if err := v.MergeConfigMap(fileLayer(f)); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to merge dashboard_metadata",
				"Check the 'dashboard_metadata' section in "+f.Path)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range resolvedKeys {
			fl := flags.Lookup(key)
			if fl == nil {
				continue
			}
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Failed to read --"+key,
					"")
			}
		}
	}

	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		return nil, errors.New(errors.ErrConfig,
			"'"+v.GetString(KeyTimeout)+"' isn't a valid timeout",
			"Try something like 10s or 1m")
	}

	s := &Settings{
		Metadata: Metadata{
			TesseraURL:  strings.TrimRight(v.GetString(KeyTesseraURL), "/"),
			DashboardID: strings.TrimSpace(v.GetString(KeyDashboardID)),
			Layout:      v.GetString(KeyLayout),
			Title:       v.GetString(KeyTitle),
			Category:    v.GetString(KeyCategory),
			Tags:        flattenTags(v.GetStringSlice(KeyTags)),
		},
		DryRun:  v.GetBool(KeyDryRun),
		Timeout: timeout,
	}
	return s, nil
}

// ResolveMetadata returns only the merged dashboard metadata.
func ResolveMetadata(f *File, flags *pflag.FlagSet) (Metadata, error) {
	s, err := Resolve(f, flags)
	if err != nil {
		return Metadata{}, err
	}
	return s.Metadata, nil
}

// fileLayer builds the config-file layer from the parsed file without
// touching it.
func fileLayer(f *File) map[string]any {
	layer := make(map[string]any)
	md := f.Metadata
	if md.TesseraURL != nil {
		layer[KeyTesseraURL] = *md.TesseraURL
	}
	if md.DashboardID != nil {
		layer[KeyDashboardID] = *md.DashboardID
	}
	if md.Layout != nil {
		layer[KeyLayout] = *md.Layout
	}
	if md.Title != nil {
		layer[KeyTitle] = *md.Title
	}
	if md.Category != nil {
		layer[KeyCategory] = *md.Category
	}
	if md.Tags != nil {
		layer[KeyTags] = append([]string(nil), (*md.Tags)...)
	}
	if f.Debug {
		layer[KeyDryRun] = true
	}
	return layer
}

// flattenTags splits comma-joined entries, which is how tags arrive from
// environment variables.
func flattenTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, splitCSV(t)...)
	}
	return out
}
