package view

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/model"
	"github.com/ghaggin/policy-portal/internal/policyapi"
)

// CreatePolicyView is the admin form behind the "Create Policy" button.
type CreatePolicyView struct {
	base
}

func NewCreatePolicyView(p Params) *CreatePolicyView {
	return &CreatePolicyView{base: newBase(p)}
}

// PolicyForm is the submitted form, kept as strings so it can be shown again.
type PolicyForm struct {
	Name           string
	Category       string
	Description    string
	Premium        string
	CoverageAmount string

	Errors map[string]string
}

// Validate checks the form and returns the policy it describes.
func (f *PolicyForm) Validate() (model.Policy, bool) {
	f.Errors = map[string]string{}

	p := model.Policy{
		Name:        strings.TrimSpace(f.Name),
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
	}
	if p.Name == "" {
		f.Errors["name"] = "Name is required."
	}
	if p.Category == "" {
		f.Errors["category"] = "Category is required."
	}
	p.Premium = f.positive("premium", "Premium", f.Premium)
	p.CoverageAmount = f.positive("coverageAmount", "Coverage amount", f.CoverageAmount)

	return p, len(f.Errors) == 0
}

func (f *PolicyForm) positive(field, label, raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		f.Errors[field] = label + " must be a positive number."
		return 0
	}
	return v
}

// Authorize decides whether the caller may see the form at all.
func (v *CreatePolicyView) Authorize(ctx context.Context) *Outcome {
	_, out := v.admin(ctx)
	return out
}

func (v *CreatePolicyView) admin(ctx context.Context) (*credentials, *Outcome) {
	creds, out := v.authorize(ctx, Outcome{Alert: AlertUnauthorized, Redirect: LoginPath})
	if out != nil {
		return nil, out
	}
	if creds.claims.Role != model.RoleAdmin {
		return nil, &Outcome{Alert: AlertAdminOnly, Redirect: CatalogPath}
	}
	return creds, nil
}

// Create submits a valid form. An invalid form yields an empty outcome and
// the form's Errors are set.
func (v *CreatePolicyView) Create(ctx context.Context, form *PolicyForm) Outcome {
	creds, out := v.admin(ctx)
	if out != nil {
		return *out
	}

	policy, ok := form.Validate()
	if !ok {
		return Outcome{}
	}

	created, err := v.api.CreatePolicy(ctx, creds.session.Token, policy)
	if err != nil {
		v.log.Error("error creating policy", zap.String("name", policy.Name), zap.Error(err))
		return Outcome{Alert: policyapi.ServerMessage(err, AlertCreateFailed)}
	}

	v.log.Info("policy created", zap.String("policy_id", created.ID), zap.String("by", creds.session.User.Email))
	return Outcome{Alert: AlertPolicyCreated, Redirect: CatalogPath}
}
