package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	loginEmailInput    = "input#input-email"
	loginPasswordInput = "input#input-password"
	loginSubmitButton  = "input[value='Login']"
	loginWarningAlert  = ".alert.alert-danger"
)

// LoginPage drives the storefront's account login form.
type LoginPage struct {
	BasePage
}

func NewLoginPage(page playwright.Page, timeout time.Duration) *LoginPage {
	return &LoginPage{BasePage: newBasePage(page, timeout)}
}

func (p *LoginPage) SetEmail(email string) error {
	return p.fill(loginEmailInput, email)
}

func (p *LoginPage) SetPassword(password string) error {
	return p.fill(loginPasswordInput, password)
}

// Submit clicks the login button and hands over to the My Account page.
func (p *LoginPage) Submit() (*MyAccountPage, error) {
	if err := p.click(loginSubmitButton); err != nil {
		return nil, err
	}
	return NewMyAccountPage(p.page, p.timeout), nil
}

// Login fills both credential fields and submits the form.
func (p *LoginPage) Login(email, password string) (*MyAccountPage, error) {
	if err := p.SetEmail(email); err != nil {
		return nil, err
	}
	if err := p.SetPassword(password); err != nil {
		return nil, err
	}
	return p.Submit()
}

// WarningDisplayed reports whether the credentials warning appears
// within the given timeout.
func (p *LoginPage) WarningDisplayed(timeout time.Duration) bool {
	return p.visibleWithin(loginWarningAlert, timeout)
}

// WarningMessage returns the text of the credentials warning.
func (p *LoginPage) WarningMessage() (string, error) {
	return p.text(loginWarningAlert)
}
