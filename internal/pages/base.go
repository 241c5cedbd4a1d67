// Package pages holds page objects for the storefront under test. Every
// element interaction waits with a bounded timeout and surfaces a
// WaitError naming the locator and current URL when it expires.
package pages

import (
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

// WaitError reports an element or condition that did not appear within
// its timeout.
type WaitError struct {
	Locator string
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("element %q not found after %s (current url: %s): %v",
		e.Locator, e.Timeout, e.URL, e.Err)
}

func (e *WaitError) Unwrap() error { return e.Err }

// BasePage provides the wait/interact helpers shared by all page objects.
type BasePage struct {
	page    playwright.Page
	timeout time.Duration
}

func newBasePage(page playwright.Page, timeout time.Duration) BasePage {
	return BasePage{page: page, timeout: timeout}
}

// Title returns the current page title.
func (b *BasePage) Title() (string, error) {
	return b.page.Title()
}

// URL returns the current page URL.
func (b *BasePage) URL() string {
	return b.page.URL()
}

// WaitForURLContains waits until the current URL contains the fragment.
func (b *BasePage) WaitForURLContains(fragment string) error {
	pattern := regexp.MustCompile(regexp.QuoteMeta(fragment))
	err := b.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(b.millis(b.timeout)),
	})
	if err != nil {
		return &WaitError{Locator: "url ~ " + fragment, URL: b.page.URL(), Timeout: b.timeout, Err: err}
	}
	return nil
}

// waitVisible waits for the selector to become visible and returns its
// locator.
func (b *BasePage) waitVisible(selector string, timeout time.Duration) (playwright.Locator, error) {
	if timeout == 0 {
		timeout = b.timeout
	}
	locator := b.page.Locator(selector)
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(b.millis(timeout)),
	})
	if err != nil {
		return nil, &WaitError{Locator: selector, URL: b.page.URL(), Timeout: timeout, Err: err}
	}
	return locator, nil
}

// fill clears the field behind the selector and types the value.
func (b *BasePage) fill(selector, value string) error {
	locator, err := b.waitVisible(selector, 0)
	if err != nil {
		return err
	}
	if err := locator.Fill(value); err != nil {
		return fmt.Errorf("could not fill %q: %w", selector, err)
	}
	return nil
}

// click waits for the selector and clicks it.
func (b *BasePage) click(selector string) error {
	locator, err := b.waitVisible(selector, 0)
	if err != nil {
		return err
	}
	if err := locator.Click(); err != nil {
		return fmt.Errorf("could not click %q: %w", selector, err)
	}
	return nil
}

// text returns the trimmed text content of the selector once visible.
func (b *BasePage) text(selector string) (string, error) {
	locator, err := b.waitVisible(selector, 0)
	if err != nil {
		return "", err
	}
	content, err := locator.TextContent()
	if err != nil {
		return "", fmt.Errorf("could not read text of %q: %w", selector, err)
	}
	return content, nil
}

// visibleWithin reports whether the selector becomes visible within the
// given timeout.
func (b *BasePage) visibleWithin(selector string, timeout time.Duration) bool {
	_, err := b.waitVisible(selector, timeout)
	return err == nil
}

func (b *BasePage) millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
