// Package browser creates and manages Playwright browser sessions for
// the e2e suite: per-family launch options, a validating factory, and a
// single-use lifecycle manager that configures each session from the
// environment config.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Supported browser family names.
const (
	Chromium = "chromium"
	Firefox  = "firefox"
	Edge     = "edge"
)

// SupportedBrowsers lists every family the factory can launch.
var SupportedBrowsers = []string{Chromium, Firefox, Edge}

// UnsupportedBrowserError is returned for browser names outside the
// supported set.
type UnsupportedBrowserError struct {
	Name string
}

func (e *UnsupportedBrowserError) Error() string {
	return fmt.Sprintf("unsupported browser %q: valid options are %s",
		e.Name, strings.Join(SupportedBrowsers, ", "))
}

// NormalizeBrowser lowercases and trims a browser name and resolves
// aliases ("chrome" means the Chromium family).
func NormalizeBrowser(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "chrome", "chromium":
		return Chromium, nil
	case "msedge", "edge":
		return Edge, nil
	case "firefox":
		return Firefox, nil
	default:
		return "", &UnsupportedBrowserError{Name: name}
	}
}

// Option overrides part of a launch spec, taking precedence over
// auto-detection.
type Option func(*LaunchSpec)

// WithExecutablePath launches an explicitly named browser binary instead
// of the auto-detected or Playwright-managed one.
func WithExecutablePath(path string) Option {
	return func(spec *LaunchSpec) { spec.ExecutablePath = path }
}

// WithArgs appends extra launch arguments.
func WithArgs(args ...string) Option {
	return func(spec *LaunchSpec) { spec.Args = append(spec.Args, args...) }
}

// Factory launches configured browser sessions over a shared Playwright
// driver.
type Factory struct {
	pw *playwright.Playwright
}

// NewFactory installs the Playwright driver if needed and starts it.
// Set PLAYWRIGHT_PREINSTALLED=1 to skip the install step in images that
// bake the browsers in.
func NewFactory() (*Factory, error) {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		// Fallback: install the driver explicitly, then retry once.
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}
	return &Factory{pw: pw}, nil
}

// Create launches a browser of the given family and returns a live,
// ready-to-configure session. It does not apply timeouts or navigate;
// that is the Manager's job.
func (f *Factory) Create(name string, headless bool, opts ...Option) (*Session, error) {
	family, err := NormalizeBrowser(name)
	if err != nil {
		return nil, err
	}

	spec, err := buildSpec(family, headless)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&spec)
	}
	if spec.ExecutablePath == "" {
		// Container/CI path: prefer a locally installed browser binary
		// when one is on PATH. Local development falls back to the
		// Playwright-managed download.
		spec.ExecutablePath = localBinary(family)
	}

	if f.pw == nil {
		return nil, fmt.Errorf("browser factory not initialized: use NewFactory")
	}

	browserType := f.pw.Chromium
	if family == Firefox {
		browserType = f.pw.Firefox
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless:      playwright.Bool(spec.Headless),
		Args:          spec.Args,
		DownloadsPath: playwright.String(spec.DownloadsDir),
	}
	if family != Firefox {
		launchOpts.ChromiumSandbox = playwright.Bool(false)
	}
	if len(spec.FirefoxPrefs) > 0 {
		launchOpts.FirefoxUserPrefs = spec.FirefoxPrefs
	}
	if spec.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(spec.ExecutablePath)
	} else if spec.Channel != "" {
		launchOpts.Channel = playwright.String(spec.Channel)
	}

	b, err := browserType.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("could not launch %s: %w", family, err)
	}

	context, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  windowWidth,
			Height: windowHeight,
		},
		AcceptDownloads: playwright.Bool(true),
	})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("could not create %s context: %w", family, err)
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		_ = b.Close()
		return nil, fmt.Errorf("could not create %s page: %w", family, err)
	}

	return &Session{
		Browser:      b,
		Context:      context,
		Page:         page,
		Family:       family,
		Headless:     spec.Headless,
		DownloadsDir: spec.DownloadsDir,
	}, nil
}

// Close stops the shared Playwright driver. Sessions must be closed
// individually before this.
func (f *Factory) Close() error {
	if f.pw == nil {
		return nil
	}
	return f.pw.Stop()
}

// localBinary looks for a system-installed browser binary on PATH.
func localBinary(family string) string {
	var candidates []string
	switch family {
	case Chromium:
		candidates = []string{"chromium", "chromium-browser", "google-chrome"}
	case Edge:
		candidates = []string{"microsoft-edge", "msedge"}
	case Firefox:
		candidates = []string{"firefox"}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
