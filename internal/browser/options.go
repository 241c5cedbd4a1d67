package browser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Fixed window geometry for consistent screenshots and element positions.
const (
	windowWidth  = 1920
	windowHeight = 1080
)

// LaunchSpec is the browser-neutral description of how to launch one
// session. Builders produce it as a pure value; the Factory translates
// it into playwright launch options.
type LaunchSpec struct {
	Family         string
	Headless       bool
	Args           []string
	FirefoxPrefs   map[string]interface{}
	DownloadsDir   string
	ExecutablePath string
	// Channel selects a branded Chromium build (e.g. msedge). Ignored
	// when ExecutablePath is set.
	Channel string
}

// buildSpec returns the launch spec for a supported browser family.
// The family name must already be normalized.
func buildSpec(family string, headless bool) (LaunchSpec, error) {
	dir, err := newDownloadsDir(family)
	if err != nil {
		return LaunchSpec{}, err
	}

	switch family {
	case Chromium:
		return chromiumSpec(family, headless, dir), nil
	case Edge:
		spec := chromiumSpec(family, headless, dir)
		// Edge is Chromium-based; it only differs in the branded
		// channel and its InPrivate flag.
		spec.Channel = "msedge"
		spec.Args = append(spec.Args, "--inprivate")
		return spec, nil
	case Firefox:
		return firefoxSpec(family, headless, dir), nil
	default:
		return LaunchSpec{}, &UnsupportedBrowserError{Name: family}
	}
}

func chromiumSpec(family string, headless bool, downloadsDir string) LaunchSpec {
	args := []string{
		// Required when running as root or inside containers where
		// sandboxing fails.
		"--no-sandbox",
		// /dev/shm defaults to 64MB in containers; use /tmp instead.
		"--disable-dev-shm-usage",
		"--disable-extensions",
		"--disable-notifications",
		"--disable-logging",
		fmt.Sprintf("--window-size=%d,%d", windowWidth, windowHeight),
	}
	if family == Chromium {
		// Clean cookie/cache state per session. Edge uses --inprivate.
		args = append(args, "--incognito")
	}
	if headless {
		args = append(args, "--headless=new", "--disable-gpu")
	}
	return LaunchSpec{
		Family:       family,
		Headless:     headless,
		Args:         args,
		DownloadsDir: downloadsDir,
	}
}

func firefoxSpec(family string, headless bool, downloadsDir string) LaunchSpec {
	args := []string{
		fmt.Sprintf("--width=%d", windowWidth),
		fmt.Sprintf("--height=%d", windowHeight),
		"-private",
	}
	if headless {
		args = append(args, "-headless")
	}
	prefs := map[string]interface{}{
		// 2 = custom download location (browser.download.dir).
		"browser.download.folderList":               2,
		"browser.download.dir":                      downloadsDir,
		"browser.download.manager.showWhenStarting": false,
		"browser.helperApps.neverAsk.saveToDisk": "application/pdf,application/zip,text/csv,application/octet-stream," +
			"application/vnd.ms-excel,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"dom.webnotifications.enabled":                false,
		"dom.push.enabled":                            false,
		"geo.enabled":                                 false,
		"browser.cache.disk.enable":                   false,
		"browser.cache.memory.enable":                 true,
		"browser.sessionstore.resume_from_crash":      false,
		"security.mixed_content.block_active_content": false,
		"devtools.console.stdout.content":             true,
	}
	return LaunchSpec{
		Family:       family,
		Headless:     headless,
		Args:         args,
		FirefoxPrefs: prefs,
		DownloadsDir: downloadsDir,
	}
}

// newDownloadsDir creates a fresh per-session download directory,
// namespaced by browser family so concurrent sessions never collide.
func newDownloadsDir(family string) (string, error) {
	dir := filepath.Join(os.TempDir(), "e2e-downloads", fmt.Sprintf("%s-%s", family, uuid.NewString()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create downloads directory: %w", err)
	}
	return dir, nil
}
