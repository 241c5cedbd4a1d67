package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	passwordURLFragment    = "account/password"
	passwordInput          = "input#input-password"
	passwordConfirmInput   = "input#input-confirm"
	passwordContinueButton = "input[value='Continue']"
	passwordMismatchError  = ".text-danger"
)

// ChangePasswordPage drives the account password change form.
type ChangePasswordPage struct {
	BasePage
}

func NewChangePasswordPage(page playwright.Page, timeout time.Duration) *ChangePasswordPage {
	return &ChangePasswordPage{BasePage: newBasePage(page, timeout)}
}

// WaitLoaded waits until the browser is on the change password page.
func (p *ChangePasswordPage) WaitLoaded() error {
	return p.WaitForURLContains(passwordURLFragment)
}

// ChangePassword fills the new password and its confirmation and submits.
func (p *ChangePasswordPage) ChangePassword(newPassword, confirmation string) error {
	if err := p.fill(passwordInput, newPassword); err != nil {
		return err
	}
	if err := p.fill(passwordConfirmInput, confirmation); err != nil {
		return err
	}
	return p.click(passwordContinueButton)
}

// ConfirmationErrorDisplayed reports whether the mismatch error appears
// within the given timeout.
func (p *ChangePasswordPage) ConfirmationErrorDisplayed(timeout time.Duration) bool {
	return p.visibleWithin(passwordMismatchError, timeout)
}

// ConfirmationError returns the text of the confirmation mismatch error.
func (p *ChangePasswordPage) ConfirmationError() (string, error) {
	return p.text(passwordMismatchError)
}
