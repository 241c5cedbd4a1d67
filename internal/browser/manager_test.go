package browser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-qa/e2e/internal/config"
)

func testConfig() *config.EnvironmentConfig {
	return &config.EnvironmentConfig{
		Environment:     "dev",
		BaseURL:         "https://example.test/login",
		TestEmail:       "a@b.com",
		TestPassword:    "secret",
		ImplicitWait:    10 * time.Second,
		PageLoadTimeout: 30 * time.Second,
	}
}

// failingFactory stands in for the real Factory in state-machine tests
// that must not launch a browser.
type failingFactory struct {
	err   error
	calls int
}

func (f *failingFactory) Create(string, bool, ...Option) (*Session, error) {
	f.calls++
	return nil, f.err
}

func TestManagerSessionBeforeStart(t *testing.T) {
	m := NewManager(nil, testConfig(), Chromium, true)

	_, err := m.Session()
	require.ErrorIs(t, err, ErrNotStarted)
}

func TestManagerStopIsIdempotent(t *testing.T) {
	m := NewManager(nil, testConfig(), Chromium, true)

	m.Stop()
	m.Stop() // second call is a no-op, must not panic

	_, err := m.Session()
	require.ErrorIs(t, err, ErrStopped)
}

func TestManagerIsSingleUse(t *testing.T) {
	m := NewManager(nil, testConfig(), Chromium, true)
	m.Stop()

	_, err := m.Start()
	require.ErrorIs(t, err, ErrStopped)
}

func TestManagerStartWhileRunning(t *testing.T) {
	m := NewManager(nil, testConfig(), Chromium, true)
	running := &Session{Family: Chromium}
	m.state = stateRunning
	m.session = running

	_, err := m.Start()
	require.ErrorIs(t, err, ErrAlreadyStarted)

	// The original session must remain untouched.
	got, err := m.Session()
	require.NoError(t, err)
	assert.Same(t, running, got)
}

func TestManagerStopClearsSession(t *testing.T) {
	m := NewManager(nil, testConfig(), Chromium, true)
	m.state = stateRunning
	m.session = &Session{Family: Chromium}

	m.Stop()

	_, err := m.Session()
	require.ErrorIs(t, err, ErrStopped)
}

func TestManagerStartPropagatesFactoryError(t *testing.T) {
	launchErr := errors.New("boom")
	factory := &failingFactory{err: launchErr}
	m := &Manager{factory: factory, cfg: testConfig(), browser: Chromium, headless: true}

	_, err := m.Start()
	require.ErrorIs(t, err, launchErr)
	assert.Equal(t, 1, factory.calls)

	// A failed start leaves the manager restartable.
	_, err = m.Start()
	require.ErrorIs(t, err, launchErr)
	assert.Equal(t, 2, factory.calls)
}

func TestManagerWithSessionPropagatesStartError(t *testing.T) {
	launchErr := errors.New("no browser here")
	m := &Manager{factory: &failingFactory{err: launchErr}, cfg: testConfig(), browser: Firefox, headless: true}

	err := m.WithSession(func(*Session) error {
		t.Fatal("fn must not run when start fails")
		return nil
	})
	require.ErrorIs(t, err, launchErr)
}
