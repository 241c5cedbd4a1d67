package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const myAccountURLFragment = "account/account"

// RightMenu is the navigation column shown on every account page.
type RightMenu struct {
	BasePage
}

// Open clicks the right-menu entry with the given visible text
// ("Password", "Address Book", ...).
func (m *RightMenu) Open(name string) error {
	selector := fmt.Sprintf(`#column-right a:has-text(%q)`, name)
	return m.click(selector)
}

// MyAccountPage is the landing page after a successful login.
type MyAccountPage struct {
	BasePage
	RightMenu RightMenu
}

func NewMyAccountPage(page playwright.Page, timeout time.Duration) *MyAccountPage {
	base := newBasePage(page, timeout)
	return &MyAccountPage{
		BasePage:  base,
		RightMenu: RightMenu{BasePage: base},
	}
}

// WaitLoaded waits until the browser has navigated to the account page.
func (p *MyAccountPage) WaitLoaded() error {
	return p.WaitForURLContains(myAccountURLFragment)
}

// OpenPasswordPage navigates to Change Password via the right menu.
func (p *MyAccountPage) OpenPasswordPage() (*ChangePasswordPage, error) {
	if err := p.RightMenu.Open("Password"); err != nil {
		return nil, err
	}
	return NewChangePasswordPage(p.page, p.timeout), nil
}
