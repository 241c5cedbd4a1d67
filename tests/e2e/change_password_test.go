package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-qa/e2e/internal/browser"
	"github.com/storefront-qa/e2e/internal/pages"
	"github.com/storefront-qa/e2e/tests/e2e/helpers"
)

func TestChangePasswordMismatch(t *testing.T) {
	helpers.ForEachBrowser(t, func(t *testing.T, session *browser.Session) {
		cfg := helpers.Config(t)

		login := pages.NewLoginPage(session.Page, cfg.ImplicitWait)
		account, err := login.Login(cfg.TestEmail, cfg.TestPassword)
		require.NoError(t, err, "login flow failed")
		require.NoError(t, account.WaitLoaded())

		password, err := account.OpenPasswordPage()
		require.NoError(t, err, "could not open the password page via the right menu")
		require.NoError(t, password.WaitLoaded())

		err = password.ChangePassword("NewPassword123!", "DifferentPassword456!")
		require.NoError(t, err)

		require.True(t, password.ConfirmationErrorDisplayed(5*time.Second),
			"mismatch error should be displayed when confirmation differs")

		message, err := password.ConfirmationError()
		require.NoError(t, err)
		assert.Contains(t, message, "Password confirmation does not match password!")

		// A validation error keeps the user on the password page.
		assert.Contains(t, password.URL(), "account/password")
	})
}
