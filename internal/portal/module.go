package portal

import (
	"go.uber.org/fx"

	"github.com/ghaggin/policy-portal/internal/middleware"
	"github.com/ghaggin/policy-portal/internal/policyapi"
	"github.com/ghaggin/policy-portal/internal/view"
)

var Module = fx.Options(
	fx.Provide(
		New,
		view.NewPolicyListView,
		view.NewCatalogView,
		view.NewCreatePolicyView,
		func(sm *middleware.SessionManager) view.Sessions { return sm },
		func(c *policyapi.Client) view.PolicyAPI { return c },
	),
)
