// internal/store/session.go

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"gira-client/internal/api"
	"gira-client/internal/models"
	"gira-client/internal/tokenstore"
	"gira-client/pkg/auth"
	"gira-client/pkg/validator"
)

// SessionState is the authentication slice. IsAuthenticated is true
// iff a token is held and has not been explicitly cleared; User may
// still be nil when the token was restored from a prior session and
// the profile has not been fetched yet.
type SessionState struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Session owns the auth state and the durable token slot. The slot is
// written or cleared by exactly four paths: Login success, SetToken,
// Logout and FetchCurrentUser failure.
type Session struct {
	subscriberHub

	mu     sync.RWMutex
	state  SessionState
	client *api.Client
	tokens tokenstore.Store
	log    *logrus.Logger
}

func NewSession(client *api.Client, tokens tokenstore.Store, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Session{client: client, tokens: tokens, log: log}
	s.restore()
	return s
}

// restore picks up a token persisted by a previous session. Expired
// tokens are dropped immediately so FetchCurrentUser does not get a
// guaranteed 401 on startup.
func (s *Session) restore() {
	token, err := s.tokens.Get()
	if err != nil {
		return
	}

	if _, err := auth.Inspect(token); err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			s.log.Debug("persisted token expired, clearing")
			_ = s.tokens.Clear()
			return
		}
		// Opaque tokens are kept; the backend is the authority.
	}

	s.state.Token = token
	s.state.IsAuthenticated = true
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyStateLocked()
}

func (s *Session) copyStateLocked() SessionState {
	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

func (s *Session) begin() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

// fail records the failure message and clears loading; the rest of
// the authentication state is left as it was before the call.
func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = api.ErrorMessage(err)
	s.mu.Unlock()
	s.notify()
}

// Login authenticates against the backend. Success stores user and
// token and persists the token; failure surfaces the server message
// (or the generic network message) without touching prior auth state.
func (s *Session) Login(ctx context.Context, form models.LoginForm) error {
	s.begin()

	if err := validator.Struct(form); err != nil {
		s.fail(err)
		return err
	}

	res, err := s.client.Login(ctx, form)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.state.IsLoading = false
	s.state.User = res.User
	s.state.Token = res.AccessToken
	s.state.IsAuthenticated = true
	s.state.Error = ""
	s.mu.Unlock()

	if err := s.tokens.Set(res.AccessToken); err != nil {
		s.log.WithError(err).Warn("failed to persist token")
	}
	s.notify()
	return nil
}

// Register creates an account. Success clears error and loading but
// does not authenticate.
func (s *Session) Register(ctx context.Context, form models.RegisterForm) error {
	s.begin()

	if err := validator.Struct(form); err != nil {
		s.fail(err)
		return err
	}

	if _, err := s.client.Register(ctx, form); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

// FetchCurrentUser refreshes the profile using the persisted token
// (injected by the transport). Failure collapses to unauthenticated
// and clears the persisted token, whatever the cause.
func (s *Session) FetchCurrentUser(ctx context.Context) error {
	s.begin()

	user, err := s.client.Me(ctx)
	if err != nil {
		s.mu.Lock()
		s.state.IsLoading = false
		s.state.Error = api.ErrorMessage(err)
		s.state.IsAuthenticated = false
		s.state.Token = ""
		s.mu.Unlock()
		_ = s.tokens.Clear()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.state.IsLoading = false
	s.state.User = user
	s.state.IsAuthenticated = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout clears the session synchronously. Other slices keep their
// data; resetting them is the host application's call.
func (s *Session) Logout() {
	s.mu.Lock()
	s.state.User = nil
	s.state.Token = ""
	s.state.IsAuthenticated = false
	s.state.Error = ""
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.log.WithError(err).Warn("failed to clear persisted token")
	}
	s.notify()
}

// SetToken installs a token directly (e.g. from an OAuth callback).
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.state.Token = token
	s.state.IsAuthenticated = true
	s.mu.Unlock()

	if err := s.tokens.Set(token); err != nil {
		s.log.WithError(err).Warn("failed to persist token")
	}
	s.notify()
}

// UpdateUser applies a partial profile update in place. No-op when no
// user is loaded.
func (s *Session) UpdateUser(apply func(*models.User)) {
	s.mu.Lock()
	if s.state.User != nil {
		apply(s.state.User)
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	s.state.IsLoading = loading
	s.mu.Unlock()
	s.notify()
}
