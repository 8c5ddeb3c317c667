package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghaggin/policy-portal/internal/model"
	"github.com/ghaggin/policy-portal/internal/policyapi"
	"github.com/ghaggin/policy-portal/internal/token/tokentest"
)

func validForm() *PolicyForm {
	return &PolicyForm{
		Name:           " Family Health ",
		Category:       "health",
		Description:    "Covers the whole family",
		Premium:        "1200",
		CoverageAmount: "500000.50",
	}
}

func TestPolicyForm_Validate(t *testing.T) {
	assert := assert.New(t)

	p, ok := validForm().Validate()
	assert.True(ok)
	assert.Equal(model.Policy{
		Name:           "Family Health",
		Category:       "health",
		Description:    "Covers the whole family",
		Premium:        1200,
		CoverageAmount: 500000.50,
	}, p)

	f := &PolicyForm{Premium: "-1", CoverageAmount: "lots"}
	_, ok = f.Validate()
	assert.False(ok)
	assert.Len(f.Errors, 4)
	assert.Contains(f.Errors, "coverageAmount")
}

func TestCreatePolicyView_Authorize(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)

	user := sessionFor(tokentest.Mint("a@b.com", "user", now.Add(time.Hour)), "a@b.com")
	out := NewCreatePolicyView(newParams(user, &fakeAPI{})).Authorize(ctx)
	require.NotNil(t, out)
	assert.Equal(Outcome{Alert: AlertAdminOnly, Redirect: CatalogPath}, *out)

	out = NewCreatePolicyView(newParams(&fakeSessions{}, &fakeAPI{})).Authorize(ctx)
	require.NotNil(t, out)
	assert.Equal(LoginPath, out.Redirect)

	admin := sessionFor(tokentest.Mint("root@b.com", "admin", now.Add(time.Hour)), "root@b.com")
	assert.Nil(NewCreatePolicyView(newParams(admin, &fakeAPI{})).Authorize(ctx))
}

func TestCreatePolicyView_Create(t *testing.T) {
	ctx := context.Background()
	require := require.New(t)
	assert := assert.New(t)

	tok := tokentest.Mint("root@b.com", "admin", now.Add(time.Hour))
	api := &fakeAPI{}
	v := NewCreatePolicyView(newParams(sessionFor(tok, "root@b.com"), api))

	out := v.Create(ctx, &PolicyForm{Name: "x"})
	assert.Equal(Outcome{}, out)
	assert.Empty(api.calls)

	out = v.Create(ctx, validForm())
	assert.Equal(Outcome{Alert: AlertPolicyCreated, Redirect: CatalogPath}, out)
	calls := api.callsTo("create")
	require.Len(calls, 1)
	assert.Equal(tok, calls[0].Bearer)

	api.createFn = func(model.Policy) (*model.Policy, error) {
		return nil, &policyapi.APIError{StatusCode: 400, Message: "Policy name already exists"}
	}
	out = v.Create(ctx, validForm())
	assert.Equal(Outcome{Alert: "Policy name already exists"}, out)
}
