// Package helpers wires configuration and browser sessions into tests:
// session-scoped config, a fresh browser per test with guaranteed
// teardown, and fan-out over every supported browser.
package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/storefront-qa/e2e/internal/browser"
	"github.com/storefront-qa/e2e/internal/config"
)

var (
	factoryOnce sync.Once
	factory     *browser.Factory
	factoryErr  error

	storeOnce sync.Once
	store     *config.Store
)

// Enabled reports whether live-browser tests should run. They drive a
// real browser against a live site, so they are opt-in.
func Enabled() bool {
	return os.Getenv("E2E_TESTS") == "1"
}

// RequireE2E skips the test unless live-browser tests are enabled.
func RequireE2E(t *testing.T) {
	t.Helper()
	if !Enabled() {
		t.Skip("set E2E_TESTS=1 to run live browser tests")
	}
}

// Headless reports the headless toggle; defaults to true, opt out with
// HEADLESS=false.
func Headless() bool {
	return os.Getenv("HEADLESS") != "false"
}

// Config resolves the environment configuration once per process; every
// test in the run shares the cached record.
func Config(t *testing.T) *config.EnvironmentConfig {
	t.Helper()
	cfg, err := configStore().Resolve("")
	require.NoError(t, err, "could not resolve environment config")
	return cfg
}

// configStore anchors the optional settings files at the repository
// root, since `go test` runs each test binary in its package directory.
func configStore() *config.Store {
	storeOnce.Do(func() {
		var opts []config.Option
		if root := repoRoot(); root != "" {
			opts = append(opts, config.WithConfigDir(filepath.Join(root, "config", "environments")))
		}
		store = config.NewStore(opts...)
	})
	return store
}

// repoRoot walks up from the working directory to the module root.
func repoRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Browsers returns the browser selection for this run: the BROWSER
// variable, "all" for every supported family, default chromium.
func Browsers() []string {
	selector := strings.ToLower(strings.TrimSpace(os.Getenv("BROWSER")))
	switch selector {
	case "", browser.Chromium:
		return []string{browser.Chromium}
	case "all":
		return browser.SupportedBrowsers
	default:
		return []string{selector}
	}
}

// StartSession starts a fresh browser session for this test, already
// navigated to the environment's base URL. Teardown is registered with
// t.Cleanup and runs on every exit path; a screenshot is captured first
// when the test failed.
func StartSession(t *testing.T, browserName string) *browser.Session {
	t.Helper()
	RequireE2E(t)

	cfg := Config(t)
	mgr := browser.NewManager(Factory(t), cfg, browserName, Headless())

	session, err := mgr.Start()
	require.NoError(t, err, "could not start %s session", browserName)

	t.Cleanup(func() {
		if t.Failed() && os.Getenv("SCREENSHOTS") != "false" {
			captureScreenshot(t, session)
		}
		mgr.Stop()
	})
	return session
}

// ForEachBrowser runs the test body once per selected browser, each in
// its own subtest with an independent session. A failure in one
// browser's run does not abort the others.
func ForEachBrowser(t *testing.T, fn func(t *testing.T, session *browser.Session)) {
	t.Helper()
	RequireE2E(t)

	for _, name := range Browsers() {
		t.Run(name, func(t *testing.T) {
			session := StartSession(t, name)
			fn(t, session)
		})
	}
}

// Factory returns the process-wide browser factory, starting Playwright
// on first use.
func Factory(t *testing.T) *browser.Factory {
	t.Helper()
	factoryOnce.Do(func() {
		factory, factoryErr = browser.NewFactory()
	})
	require.NoError(t, factoryErr, "could not start playwright")
	return factory
}

func captureScreenshot(t *testing.T, session *browser.Session) {
	t.Helper()
	dir := filepath.Join("test-results", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Logf("could not create screenshot directory: %v", err)
		return
	}
	name := strings.ReplaceAll(t.Name(), "/", "_")
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", name, time.Now().Unix()))
	if err := session.Screenshot(path); err != nil {
		t.Logf("could not capture screenshot: %v", err)
		return
	}
	t.Logf("screenshot saved to %s", path)
}
