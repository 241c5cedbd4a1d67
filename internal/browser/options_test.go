package browser

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromiumSpecHeadless(t *testing.T) {
	spec, err := buildSpec(Chromium, true)
	require.NoError(t, err)

	assert.True(t, spec.Headless)
	assert.Contains(t, spec.Args, "--headless=new")
	assert.Contains(t, spec.Args, "--disable-gpu")
	// Container-safety flags are unconditional for Chromium-derived browsers.
	assert.Contains(t, spec.Args, "--no-sandbox")
	assert.Contains(t, spec.Args, "--disable-dev-shm-usage")
	assert.Contains(t, spec.Args, "--incognito")
	assert.Contains(t, spec.Args, fmt.Sprintf("--window-size=%d,%d", windowWidth, windowHeight))
}

func TestChromiumSpecHeaded(t *testing.T) {
	spec, err := buildSpec(Chromium, false)
	require.NoError(t, err)

	assert.False(t, spec.Headless)
	assert.NotContains(t, spec.Args, "--headless=new")
	assert.NotContains(t, spec.Args, "--disable-gpu")
	// Sandbox stays disabled even in headed mode.
	assert.Contains(t, spec.Args, "--no-sandbox")
	assert.Contains(t, spec.Args, "--disable-dev-shm-usage")
}

func TestEdgeSpec(t *testing.T) {
	spec, err := buildSpec(Edge, true)
	require.NoError(t, err)

	assert.Equal(t, "msedge", spec.Channel)
	assert.Contains(t, spec.Args, "--inprivate")
	assert.NotContains(t, spec.Args, "--incognito")
	assert.Contains(t, spec.Args, "--no-sandbox")
	assert.Contains(t, spec.Args, "--headless=new")
}

func TestFirefoxSpec(t *testing.T) {
	spec, err := buildSpec(Firefox, true)
	require.NoError(t, err)

	assert.Contains(t, spec.Args, "-headless")
	assert.Contains(t, spec.Args, "-private")
	assert.Contains(t, spec.Args, fmt.Sprintf("--width=%d", windowWidth))
	assert.NotContains(t, spec.Args, "--no-sandbox", "sandbox flags are Chromium-only")

	require.NotNil(t, spec.FirefoxPrefs)
	assert.Equal(t, 2, spec.FirefoxPrefs["browser.download.folderList"])
	assert.Equal(t, spec.DownloadsDir, spec.FirefoxPrefs["browser.download.dir"])
	assert.Equal(t, false, spec.FirefoxPrefs["dom.webnotifications.enabled"])

	headed, err := buildSpec(Firefox, false)
	require.NoError(t, err)
	assert.NotContains(t, headed.Args, "-headless")
}

func TestSpecIsPureAsideFromDownloadsDir(t *testing.T) {
	first, err := buildSpec(Chromium, true)
	require.NoError(t, err)
	second, err := buildSpec(Chromium, true)
	require.NoError(t, err)

	assert.Equal(t, first.Args, second.Args)
	assert.Equal(t, first.Headless, second.Headless)
	assert.NotEqual(t, first.DownloadsDir, second.DownloadsDir,
		"each session gets its own download directory")
}

func TestDownloadsDirPerFamily(t *testing.T) {
	for _, family := range SupportedBrowsers {
		spec, err := buildSpec(family, true)
		require.NoError(t, err)

		info, err := os.Stat(spec.DownloadsDir)
		require.NoError(t, err, "downloads directory should be created")
		assert.True(t, info.IsDir())
		assert.Contains(t, spec.DownloadsDir, family)
	}
}
