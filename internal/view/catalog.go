package view

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/model"
	"github.com/ghaggin/policy-portal/internal/policyapi"
)

// CatalogView is the "Available Policies" page.
type CatalogView struct {
	base
}

func NewCatalogView(p Params) *CatalogView {
	return &CatalogView{base: newBase(p)}
}

type Catalog struct {
	Role     string
	Policies []model.Policy
}

func (c Catalog) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// CanTake is true for everyone but admins, anonymous callers included;
// taking a policy sends them to login.
func (c Catalog) CanTake() bool {
	return !c.IsAdmin()
}

// Role is the role claim of the caller's token, empty when anonymous.
func (v *CatalogView) Role(ctx context.Context) string {
	return v.role(ctx)
}

// Load fetches the whole catalog without credentials.
func (v *CatalogView) Load(ctx context.Context) []model.Policy {
	policies, err := v.api.ListPolicies(ctx)
	if err != nil {
		v.log.Error("error fetching policies", zap.Error(err))
		return []model.Policy{}
	}
	return policies
}

// Render builds the page for an already loaded catalog.
func (v *CatalogView) Render(ctx context.Context, policies []model.Policy) Catalog {
	if policies == nil {
		policies = []model.Policy{}
	}
	return Catalog{Role: v.Role(ctx), Policies: policies}
}

func (v *CatalogView) TakePolicy(ctx context.Context, id string) Outcome {
	creds, out := v.authorize(ctx, Outcome{Alert: AlertLoginToTake, Redirect: LoginPath})
	if out != nil {
		return *out
	}

	err := v.api.TakePolicy(ctx, creds.session.Token, model.TakeRequest{
		PolicyID:  id,
		UserEmail: creds.session.User.Email,
	})
	if err != nil {
		v.log.Error("error taking policy", zap.String("policy_id", id), zap.Error(err))
		if apiErr, ok := policyapi.AsAPIError(err); ok {
			return Outcome{Alert: AlertTakeFailed + policyapi.ServerMessage(apiErr, http.StatusText(apiErr.StatusCode))}
		}
		v.clearToken(ctx)
		return Outcome{Alert: AlertInvalidSession, Redirect: LoginPath}
	}

	return Outcome{Alert: AlertPolicyTaken}
}

// DeletePolicy removes id through the backend and, on success, from the
// given snapshot. The catalog is not fetched again.
func (v *CatalogView) DeletePolicy(ctx context.Context, policies []model.Policy, id string) ([]model.Policy, Outcome) {
	creds, out := v.authorize(ctx, Outcome{Alert: AlertUnauthorized})
	if out != nil {
		return policies, *out
	}
	if creds.claims.Role != model.RoleAdmin {
		return policies, Outcome{Alert: AlertAdminOnly}
	}

	if err := v.api.DeletePolicy(ctx, creds.session.Token, id); err != nil {
		v.log.Error("error deleting policy", zap.String("policy_id", id), zap.Error(err))
		return policies, Outcome{Alert: policyapi.ServerMessage(err, AlertDeleteFailed)}
	}

	return model.WithoutPolicy(policies, id), Outcome{Alert: AlertPolicyDeleted}
}
