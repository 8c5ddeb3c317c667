package portal

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/clock"
	"github.com/ghaggin/policy-portal/internal/config"
	"github.com/ghaggin/policy-portal/internal/middleware"
	"github.com/ghaggin/policy-portal/internal/view"
	"github.com/ghaggin/policy-portal/web"
)

type Portal struct {
	log    *zap.Logger
	server *http.Server
}

type Params struct {
	fx.In

	Log          *zap.Logger
	Config       *config.Config
	Clock        clock.Clock
	Sessions     *middleware.SessionManager
	MyPolicies   *view.PolicyListView
	Catalog      *view.CatalogView
	CreatePolicy *view.CreatePolicyView
}

func New(p Params) (*Portal, error) {
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}

	h := &handlers{
		log:        p.Log,
		clock:      p.Clock,
		sessions:   p.Sessions,
		myPolicies: p.MyPolicies,
		catalog:    p.Catalog,
		creator:    p.CreatePolicy,
	}

	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(chimw.RealIP)
	root.Use(middleware.RequestLogger(p.Log))
	root.Use(chimw.Recoverer)

	root.Get("/healthz", healthz)
	root.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(static))))

	root.Group(func(r chi.Router) {
		r.Use(p.Sessions.Wrap)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, view.CatalogPath, http.StatusSeeOther)
		})

		r.Get("/policies", h.catalogPage)
		r.Post("/policies/{id}/take", h.takePolicy)
		r.Get("/policies/{id}/delete", h.confirmDelete)
		r.Post("/policies/{id}/delete", h.deletePolicy)

		r.Get("/my-policies", h.myPoliciesPage)

		r.Get("/admin/create-policy", h.createPolicyPage)
		r.Post("/admin/create-policy", h.createPolicy)

		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
	})

	return &Portal{
		log: p.Log,
		server: &http.Server{
			Addr:    p.Config.Server.Addr(),
			Handler: root,
		},
	}, nil
}

func (p *Portal) Handler() http.Handler {
	return p.server.Handler
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, p *Portal) {
	lc.Append(fx.Hook{
		OnStart: p.Start,
		OnStop:  p.server.Shutdown,
	})
}

func (p *Portal) Start(_ context.Context) error {
	p.log.Info("starting portal", zap.String("addr", p.server.Addr))
	go func() {
		err := p.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.log.Error("error starting server", zap.Error(err))
		}
	}()
	return nil
}
