package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/model"
)

// PolicyListView is the "My Policies" page.
type PolicyListView struct {
	base
}

func NewPolicyListView(p Params) *PolicyListView {
	return &PolicyListView{base: newBase(p)}
}

type PolicyRow struct {
	Policy    model.Policy
	ClaimPath string
}

type PolicyList struct {
	Email    string
	Policies []model.Policy
}

func (l PolicyList) Rows() []PolicyRow {
	rows := make([]PolicyRow, 0, len(l.Policies))
	for _, p := range l.Policies {
		rows = append(rows, PolicyRow{
			Policy:    p,
			ClaimPath: model.ClaimIntent{PolicyID: p.ID, Email: l.Email}.Path(),
		})
	}
	return rows
}

// Load fetches the caller's policies. Without a stored identity nothing is
// requested and the list stays empty.
func (v *PolicyListView) Load(ctx context.Context) PolicyList {
	list := PolicyList{Policies: []model.Policy{}}

	s, err := v.sessions.Get(ctx)
	if err != nil || s.User == nil || s.User.Email == "" {
		return list
	}
	list.Email = s.User.Email

	policies, err := v.api.MyPolicies(ctx, s.Token, s.User.Email)
	if err != nil {
		v.log.Error("error fetching policies", zap.String("email", s.User.Email), zap.Error(err))
		return list
	}

	list.Policies = policies
	return list
}
