package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBrowser(t *testing.T) {
	cases := map[string]string{
		"chromium":  Chromium,
		"chrome":    Chromium,
		" Chrome ":  Chromium,
		"FIREFOX":   Firefox,
		"edge":      Edge,
		"msedge":    Edge,
		"  EDGE  ":  Edge,
		"firefox\t": Firefox,
	}
	for input, want := range cases {
		got, err := NormalizeBrowser(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestNormalizeBrowserUnsupported(t *testing.T) {
	for _, input := range []string{"safari", "opera", "", "netscape"} {
		_, err := NormalizeBrowser(input)
		require.Error(t, err, "input %q", input)

		var unsupported *UnsupportedBrowserError
		require.ErrorAs(t, err, &unsupported)
		assert.Contains(t, err.Error(), "chromium, firefox, edge",
			"error should name the supported set")
	}
}

func TestCreateRejectsUnsupportedBrowser(t *testing.T) {
	f := &Factory{}

	_, err := f.Create("safari", true)
	require.Error(t, err)

	var unsupported *UnsupportedBrowserError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "safari", unsupported.Name)
}

func TestCreateRequiresInitializedFactory(t *testing.T) {
	f := &Factory{}

	_, err := f.Create("chromium", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestWithExecutablePathOverride(t *testing.T) {
	spec, err := buildSpec(Chromium, true)
	require.NoError(t, err)

	WithExecutablePath("/usr/bin/chromium")(&spec)
	assert.Equal(t, "/usr/bin/chromium", spec.ExecutablePath)

	WithArgs("--lang=en-US")(&spec)
	assert.Contains(t, spec.Args, "--lang=en-US")
}
