package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlagSet mirrors the flags the push command registers.
func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyTesseraURL, "", "")
	fs.String(KeyDashboardID, "", "")
	fs.String(KeyTitle, "", "")
	fs.String(KeyLayout, "", "")
	fs.String(KeyCategory, "", "")
	fs.StringSlice(KeyTags, nil, "")
	fs.Bool(KeyDryRun, false, "")
	fs.Duration(KeyTimeout, DefaultTimeout, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestResolveDefaults(t *testing.T) {
	s, err := Resolve(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "", s.Metadata.TesseraURL)
	assert.Equal(t, "", s.Metadata.DashboardID)
	assert.True(t, s.Metadata.IsCreate())
	assert.Equal(t, DefaultLayout, s.Metadata.Layout)
	assert.Equal(t, DefaultTitle, s.Metadata.Title)
	assert.Equal(t, DefaultCategory, s.Metadata.Category)
	assert.Empty(t, s.Metadata.Tags)
	assert.False(t, s.DryRun)
	assert.Equal(t, DefaultTimeout, s.Timeout)
}

func TestResolveConfigOverridesDefaults(t *testing.T) {
	tags := []string{"system"}
	f := &File{Metadata: MetadataConfig{
		Title:  strPtr("X"),
		Layout: strPtr("fluid"),
		Tags:   &tags,
	}}

	s, err := Resolve(f, newFlagSet(t))
	require.NoError(t, err)

	assert.Equal(t, "X", s.Metadata.Title)
	assert.Equal(t, "fluid", s.Metadata.Layout)
	assert.Equal(t, DefaultCategory, s.Metadata.Category)
	assert.Equal(t, []string{"system"}, s.Metadata.Tags)
}

func TestResolveFlagOverridesConfig(t *testing.T) {
	f := &File{Metadata: MetadataConfig{
		Title:    strPtr("X"),
		Category: strPtr("Farms"),
	}}

	m, err := ResolveMetadata(f, newFlagSet(t, "--title=Y", "--tags=a,b,c"))
	require.NoError(t, err)

	assert.Equal(t, "Y", m.Title)
	assert.Equal(t, "Farms", m.Category, "unset flags leave the config value alone")
	assert.Equal(t, []string{"a", "b", "c"}, m.Tags)
}

func TestResolveEnvLayer(t *testing.T) {
	t.Setenv("TESSERA_GEN_TITLE", "from env")
	t.Setenv("TESSERA_GEN_TESSERA_URL", "http://tessera:5000/")
	t.Setenv("TESSERA_GEN_TAGS", "a,b")

	f := &File{Metadata: MetadataConfig{Title: strPtr("from file")}}

	s, err := Resolve(f, newFlagSet(t))
	require.NoError(t, err)
	assert.Equal(t, "from env", s.Metadata.Title)
	assert.Equal(t, "http://tessera:5000", s.Metadata.TesseraURL, "trailing slash trimmed")
	assert.Equal(t, []string{"a", "b"}, s.Metadata.Tags)

	s, err = Resolve(f, newFlagSet(t, "--title=from flag"))
	require.NoError(t, err)
	assert.Equal(t, "from flag", s.Metadata.Title)
}

func TestResolveDryRun(t *testing.T) {
	s, err := Resolve(&File{Debug: true}, newFlagSet(t))
	require.NoError(t, err)
	assert.True(t, s.DryRun, "debug in the config file enables dry run")

	s, err = Resolve(&File{}, newFlagSet(t, "--dry-run"))
	require.NoError(t, err)
	assert.True(t, s.DryRun)
}

func TestResolveTimeout(t *testing.T) {
	s, err := Resolve(nil, newFlagSet(t, "--timeout=5s"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.Timeout)

	_, err = Resolve(nil, newFlagSet(t, "--timeout=0s"))
	assert.Error(t, err)
}

func TestResolveDoesNotMutateFile(t *testing.T) {
	tags := []string{"system"}
	f := &File{Metadata: MetadataConfig{Title: strPtr("X"), Tags: &tags}}

	_, err := Resolve(f, newFlagSet(t, "--title=Y", "--tags=z"))
	require.NoError(t, err)

	assert.Equal(t, "X", *f.Metadata.Title)
	assert.Equal(t, []string{"system"}, *f.Metadata.Tags)
}

func TestValidateMetadata(t *testing.T) {
	base := Metadata{Layout: "fixed", Title: "t", Category: "c"}

	assert.NoError(t, ValidateMetadata(base, false))

	err := ValidateMetadata(base, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No Tessera URL configured")

	withURL := base
	withURL.TesseraURL = "http://127.0.0.1:5000"
	assert.NoError(t, ValidateMetadata(withURL, true))

	badURL := base
	badURL.TesseraURL = "not a url"
	assert.Error(t, ValidateMetadata(badURL, true))

	badLayout := withURL
	badLayout.Layout = "grid"
	assert.Error(t, ValidateMetadata(badLayout, true))
}
