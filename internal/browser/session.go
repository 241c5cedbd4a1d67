package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is a live, controllable browser instance: the browser process,
// an isolated context, and its single page. It is owned by the Manager
// that created it and is not shared across tests.
type Session struct {
	Browser      playwright.Browser
	Context      playwright.BrowserContext
	Page         playwright.Page
	Family       string
	Headless     bool
	DownloadsDir string
}

// ApplyTimeouts sets the default element-lookup timeout (implicit wait)
// and the navigation timeout on the session's page.
func (s *Session) ApplyTimeouts(implicitWait, pageLoadTimeout time.Duration) {
	s.Page.SetDefaultTimeout(float64(implicitWait.Milliseconds()))
	s.Page.SetDefaultNavigationTimeout(float64(pageLoadTimeout.Milliseconds()))
}

// Navigate loads the given URL.
func (s *Session) Navigate(url string) error {
	if _, err := s.Page.Goto(url); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}

// MaximizeViewport sizes the page to the full configured window geometry.
func (s *Session) MaximizeViewport() error {
	if err := s.Page.SetViewportSize(windowWidth, windowHeight); err != nil {
		return fmt.Errorf("could not set viewport size: %w", err)
	}
	return nil
}

// URL returns the page's current URL.
func (s *Session) URL() string {
	return s.Page.URL()
}

// Title returns the page's current title.
func (s *Session) Title() (string, error) {
	return s.Page.Title()
}

// Screenshot writes a full-page screenshot to path.
func (s *Session) Screenshot(path string) error {
	_, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("could not take screenshot: %w", err)
	}
	return nil
}

// Close tears down page, context, and browser in order, continuing past
// individual failures and reporting the first one.
func (s *Session) Close() error {
	var firstErr error
	if s.Page != nil {
		if err := s.Page.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.Context != nil {
		if err := s.Context.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
