package middleware

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"go.uber.org/fx"

	"github.com/ghaggin/policy-portal/internal/config"
	"github.com/ghaggin/policy-portal/internal/model"
)

const (
	sessionKey = "session_key"
	flashKey   = "flash"
	catalogKey = "catalog"
	reuseKey   = "catalog_reuse"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

type SessionManager struct {
	impl *scs.SessionManager
}

type SessionParams struct {
	fx.In

	Config *config.Config
	Store  scs.Store
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	gob.Register(&model.Session{})
	gob.Register([]model.Policy{})

	sm := &SessionManager{}
	sm.impl = scs.New()
	sm.impl.Store = p.Store
	sm.impl.Lifetime = p.Config.Session.Lifetime
	sm.impl.Cookie.Name = p.Config.Session.CookieName
	sm.impl.Cookie.Secure = p.Config.Session.Secure
	sm.impl.Cookie.HttpOnly = true
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Get(ctx context.Context) (*model.Session, error) {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Start replaces whatever the browser held with a fresh session under a new
// session token.
func (s *SessionManager) Start(ctx context.Context, session *model.Session) error {
	if err := s.impl.RenewToken(ctx); err != nil {
		return err
	}

	s.impl.Put(ctx, sessionKey, session)
	return nil
}

// ClearToken forgets the bearer token but keeps the user record.
func (s *SessionManager) ClearToken(ctx context.Context) error {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok {
		return nil
	}

	cleared := *session
	cleared.Token = ""
	s.impl.Put(ctx, sessionKey, &cleared)
	return nil
}

func (s *SessionManager) Destroy(ctx context.Context) error {
	return s.impl.Destroy(ctx)
}

// Flash stores an alert to be shown on the next rendered page.
func (s *SessionManager) Flash(ctx context.Context, msg string) {
	s.impl.Put(ctx, flashKey, msg)
}

func (s *SessionManager) PopFlash(ctx context.Context) string {
	return s.impl.PopString(ctx, flashKey)
}

// PutCatalog keeps the catalog the browser is looking at.
func (s *SessionManager) PutCatalog(ctx context.Context, policies []model.Policy) {
	s.impl.Put(ctx, catalogKey, policies)
}

func (s *SessionManager) Catalog(ctx context.Context) []model.Policy {
	policies, _ := s.impl.Get(ctx, catalogKey).([]model.Policy)
	return policies
}

// ReuseCatalog makes the next catalog page render the stored snapshot
// instead of fetching the list again.
func (s *SessionManager) ReuseCatalog(ctx context.Context) {
	s.impl.Put(ctx, reuseKey, true)
}

// CachedCatalog returns the snapshot if ReuseCatalog was called since the
// last catalog page. The marker is consumed either way.
func (s *SessionManager) CachedCatalog(ctx context.Context) ([]model.Policy, bool) {
	if !s.impl.PopBool(ctx, reuseKey) {
		return nil, false
	}
	policies, ok := s.impl.Get(ctx, catalogKey).([]model.Policy)
	return policies, ok
}
