package browser

import (
	"errors"
	"log"

	"github.com/storefront-qa/e2e/internal/config"
)

// Usage errors surfaced by the Manager. These are programming mistakes
// in the calling test, never retried.
var (
	// ErrAlreadyStarted means Start was called while a session is running.
	ErrAlreadyStarted = errors.New("driver already started: call Stop before starting again")
	// ErrNotStarted means the session was accessed before Start.
	ErrNotStarted = errors.New("driver not started: call Start first")
	// ErrStopped means the manager was used after Stop. Managers are
	// single-use: create a new one for another session.
	ErrStopped = errors.New("driver manager stopped: create a new manager for another session")
)

type managerState int

const (
	stateNotStarted managerState = iota
	stateRunning
	stateStopped
)

// sessionFactory is what the Manager needs from the Factory.
type sessionFactory interface {
	Create(name string, headless bool, opts ...Option) (*Session, error)
}

// Manager owns the lifecycle of exactly one browser session: launch,
// configure, navigate to the environment's base URL, and tear down.
// A Manager is single-use; once stopped it cannot be restarted.
type Manager struct {
	factory  sessionFactory
	cfg      *config.EnvironmentConfig
	browser  string
	headless bool
	opts     []Option

	state   managerState
	session *Session
}

// NewManager prepares a lifecycle manager for one browser session.
func NewManager(factory *Factory, cfg *config.EnvironmentConfig, browserName string, headless bool, opts ...Option) *Manager {
	return &Manager{
		factory:  factory,
		cfg:      cfg,
		browser:  browserName,
		headless: headless,
		opts:     opts,
	}
}

// Start launches and configures the session: create via the factory,
// apply the environment's timeouts, navigate to the base URL, and size
// the viewport. Calling Start on a running or stopped manager is a
// usage error and leaves the existing session untouched.
func (m *Manager) Start() (*Session, error) {
	switch m.state {
	case stateRunning:
		return nil, ErrAlreadyStarted
	case stateStopped:
		return nil, ErrStopped
	}

	session, err := m.factory.Create(m.browser, m.headless, m.opts...)
	if err != nil {
		return nil, err
	}

	session.ApplyTimeouts(m.cfg.ImplicitWait, m.cfg.PageLoadTimeout)

	if err := session.Navigate(m.cfg.BaseURL); err != nil {
		m.discard(session)
		return nil, err
	}
	if err := session.MaximizeViewport(); err != nil {
		m.discard(session)
		return nil, err
	}

	m.session = session
	m.state = stateRunning
	log.Printf("[driver] started %s session environment=%s base_url=%s headless=%t",
		session.Family, m.cfg.Environment, m.cfg.BaseURL, m.headless)
	return session, nil
}

// Stop closes the session. It is idempotent and never returns an error:
// teardown must not mask or replace a test's own outcome, so close
// failures are logged as warnings and swallowed.
func (m *Manager) Stop() {
	if m.state == stateRunning && m.session != nil {
		if err := m.session.Close(); err != nil {
			log.Printf("[teardown] warning: error closing %s session: %v", m.browser, err)
		}
	}
	m.session = nil
	m.state = stateStopped
}

// Session returns the running session. Accessing it before Start or
// after Stop is a usage error.
func (m *Manager) Session() (*Session, error) {
	switch m.state {
	case stateRunning:
		return m.session, nil
	case stateStopped:
		return nil, ErrStopped
	default:
		return nil, ErrNotStarted
	}
}

// WithSession runs fn with a started session and guarantees teardown on
// every exit path. An error from fn propagates unchanged; teardown
// failures never replace it.
func (m *Manager) WithSession(fn func(*Session) error) error {
	session, err := m.Start()
	if err != nil {
		return err
	}
	defer m.Stop()
	return fn(session)
}

// discard closes a session that failed mid-configuration, before the
// manager ever reached the running state.
func (m *Manager) discard(session *Session) {
	if err := session.Close(); err != nil {
		log.Printf("[driver] warning: error discarding %s session: %v", m.browser, err)
	}
}
