// Package view holds the page logic of the portal independent of HTTP: what
// each page fetches, which actions a caller may see, and what an action
// tells the user afterwards.
package view

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/clock"
	"github.com/ghaggin/policy-portal/internal/model"
	"github.com/ghaggin/policy-portal/internal/token"
)

const (
	LoginPath        = "/login"
	CatalogPath      = "/policies"
	CreatePolicyPath = "/admin/create-policy"
)

const (
	AlertLoginToTake    = "Please login to take a policy."
	AlertSessionExpired = "Session expired. Please login again."
	AlertInvalidSession = "Invalid session. Please login again."
	AlertPolicyTaken    = "Policy taken successfully!"
	AlertTakeFailed     = "Error taking policy: "
	AlertUnauthorized   = "Unauthorized. Please login."
	AlertPolicyDeleted  = "Policy deleted successfully!"
	AlertDeleteFailed   = "Error deleting policy."
	AlertAdminOnly      = "Only administrators can manage policies."
	AlertPolicyCreated  = "Policy created successfully!"
	AlertCreateFailed   = "Error creating policy."
)

// Sessions is the browser's session as the views see it.
type Sessions interface {
	Get(ctx context.Context) (*model.Session, error)
	ClearToken(ctx context.Context) error
}

type PolicyAPI interface {
	ListPolicies(ctx context.Context) ([]model.Policy, error)
	MyPolicies(ctx context.Context, bearer, email string) ([]model.Policy, error)
	TakePolicy(ctx context.Context, bearer string, req model.TakeRequest) error
	DeletePolicy(ctx context.Context, bearer, id string) error
	CreatePolicy(ctx context.Context, bearer string, policy model.Policy) (*model.Policy, error)
}

// Outcome is what the user sees after an action: an alert, and optionally a
// page to go to instead of the current one.
type Outcome struct {
	Alert    string
	Redirect string
}

type Params struct {
	fx.In

	Sessions Sessions
	API      PolicyAPI
	Clock    clock.Clock
	Log      *zap.Logger
}

type base struct {
	sessions Sessions
	api      PolicyAPI
	clock    clock.Clock
	log      *zap.Logger
}

func newBase(p Params) base {
	c := p.Clock
	if c == nil {
		c = clock.New()
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return base{sessions: p.Sessions, api: p.API, clock: c, log: log}
}

// credentials is a session holding a decodable, unexpired token.
type credentials struct {
	session *model.Session
	claims  *token.Claims
}

// authorize checks the stored token before an authenticated call. On
// failure it returns the outcome to show; missing is the outcome used when
// there is no token at all.
func (b base) authorize(ctx context.Context, missing Outcome) (*credentials, *Outcome) {
	s, err := b.sessions.Get(ctx)
	if err != nil || !token.Present(s.Token) {
		return nil, &missing
	}

	claims, err := token.Decode(s.Token)
	if err != nil {
		b.log.Warn("stored token could not be decoded", zap.Error(err))
		b.clearToken(ctx)
		return nil, &Outcome{Alert: AlertInvalidSession, Redirect: LoginPath}
	}

	if claims.Expired(b.clock.Now()) {
		b.clearToken(ctx)
		return nil, &Outcome{Alert: AlertSessionExpired, Redirect: LoginPath}
	}

	if s.User == nil || s.User.Email == "" {
		b.clearToken(ctx)
		return nil, &Outcome{Alert: AlertInvalidSession, Redirect: LoginPath}
	}

	return &credentials{session: s, claims: claims}, nil
}

func (b base) clearToken(ctx context.Context) {
	if err := b.sessions.ClearToken(ctx); err != nil {
		b.log.Error("failed clearing token", zap.Error(err))
	}
}

// role decodes the role claim of the stored token. Anything short of a
// decodable token leaves the caller anonymous.
func (b base) role(ctx context.Context) string {
	s, err := b.sessions.Get(ctx)
	if err != nil || !token.Present(s.Token) {
		return ""
	}

	claims, err := token.Decode(s.Token)
	if err != nil {
		b.log.Warn("error decoding token", zap.Error(err))
		return ""
	}

	return claims.Role
}
