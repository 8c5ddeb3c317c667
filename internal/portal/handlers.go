package portal

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/clock"
	"github.com/ghaggin/policy-portal/internal/middleware"
	"github.com/ghaggin/policy-portal/internal/model"
	"github.com/ghaggin/policy-portal/internal/template"
	"github.com/ghaggin/policy-portal/internal/token"
	"github.com/ghaggin/policy-portal/internal/view"
)

const (
	msgTokenUnreadable = "That token could not be read."
	msgTokenExpired    = "That token has expired."
	msgTokenNoEmail    = "That token does not carry an email address."
)

type handlers struct {
	log        *zap.Logger
	clock      clock.Clock
	sessions   *middleware.SessionManager
	myPolicies *view.PolicyListView
	catalog    *view.CatalogView
	creator    *view.CreatePolicyView
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, tmpl, title, alert string, page any) {
	td := &template.Data{
		PageTitle: title,
		Alert:     alert,
		Page:      page,
	}
	if s, err := h.sessions.Get(r.Context()); err == nil {
		td.User = s.User
	}

	if err := template.Render(w, status, tmpl, td); err != nil {
		h.log.Error("failed rendering template", zap.String("template", tmpl), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// follow sends the browser to the outcome's redirect, carrying its alert
// along. It reports false when the outcome stays on the current page.
func (h *handlers) follow(w http.ResponseWriter, r *http.Request, out view.Outcome) bool {
	if out.Redirect == "" {
		return false
	}
	if out.Alert != "" {
		h.sessions.Flash(r.Context(), out.Alert)
	}
	http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
	return true
}

func (h *handlers) catalogPage(w http.ResponseWriter, r *http.Request) {
	policies, ok := h.sessions.CachedCatalog(r.Context())
	if !ok {
		policies = h.catalog.Load(r.Context())
		h.sessions.PutCatalog(r.Context(), policies)
	}

	h.renderCatalog(w, r, h.sessions.PopFlash(r.Context()), policies)
}

func (h *handlers) renderCatalog(w http.ResponseWriter, r *http.Request, alert string, policies []model.Policy) {
	h.render(w, r, http.StatusOK, "catalog.html", "Available Policies", alert, h.catalog.Render(r.Context(), policies))
}

func (h *handlers) takePolicy(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.TakePolicy(r.Context(), chi.URLParam(r, "id"))
	h.backToCatalog(w, r, out)
}

// backToCatalog answers a catalog form post with a redirect. Outcomes that
// stay on the catalog come back to the stored snapshot.
func (h *handlers) backToCatalog(w http.ResponseWriter, r *http.Request, out view.Outcome) {
	if out.Redirect == "" {
		h.sessions.ReuseCatalog(r.Context())
		out.Redirect = view.CatalogPath
	}
	h.follow(w, r, out)
}

func (h *handlers) confirmDelete(w http.ResponseWriter, r *http.Request) {
	if h.catalog.Role(r.Context()) != model.RoleAdmin {
		h.follow(w, r, view.Outcome{Alert: view.AlertAdminOnly, Redirect: view.CatalogPath})
		return
	}

	id := chi.URLParam(r, "id")
	policy := model.Policy{ID: id}
	for _, p := range h.sessions.Catalog(r.Context()) {
		if p.ID == id {
			policy = p
			break
		}
	}

	h.render(w, r, http.StatusOK, "delete_confirm.html", "Delete Policy", "", policy)
}

func (h *handlers) deletePolicy(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") != "yes" {
		http.Redirect(w, r, view.CatalogPath, http.StatusSeeOther)
		return
	}

	left, out := h.catalog.DeletePolicy(r.Context(), h.sessions.Catalog(r.Context()), chi.URLParam(r, "id"))
	h.sessions.PutCatalog(r.Context(), left)
	h.backToCatalog(w, r, out)
}

func (h *handlers) myPoliciesPage(w http.ResponseWriter, r *http.Request) {
	list := h.myPolicies.Load(r.Context())
	h.render(w, r, http.StatusOK, "my_policies.html", "My Policies", h.sessions.PopFlash(r.Context()), list)
}

func (h *handlers) createPolicyPage(w http.ResponseWriter, r *http.Request) {
	if out := h.creator.Authorize(r.Context()); out != nil {
		h.follow(w, r, *out)
		return
	}

	h.render(w, r, http.StatusOK, "create_policy.html", "Create Policy", "", &view.PolicyForm{})
}

func (h *handlers) createPolicy(w http.ResponseWriter, r *http.Request) {
	form := &view.PolicyForm{
		Name:           r.FormValue("name"),
		Category:       r.FormValue("category"),
		Description:    r.FormValue("description"),
		Premium:        r.FormValue("premium"),
		CoverageAmount: r.FormValue("coverageAmount"),
	}

	out := h.creator.Create(r.Context(), form)
	if h.follow(w, r, out) {
		return
	}

	status := http.StatusOK
	if len(form.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, r, status, "create_policy.html", "Create Policy", out.Alert, form)
}

func (h *handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", "Login", h.sessions.PopFlash(r.Context()), "")
}

// login takes the token the identity provider issued and turns its claims
// into the session's user record.
func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.FormValue("token"))

	claims, err := token.Decode(raw)
	if err != nil {
		h.log.Warn("rejected login token", zap.Error(err))
		h.render(w, r, http.StatusBadRequest, "login.html", "Login", "", msgTokenUnreadable)
		return
	}
	if claims.Expired(h.clock.Now()) {
		h.render(w, r, http.StatusBadRequest, "login.html", "Login", "", msgTokenExpired)
		return
	}
	if claims.Email == "" {
		h.render(w, r, http.StatusBadRequest, "login.html", "Login", "", msgTokenNoEmail)
		return
	}

	err = h.sessions.Start(r.Context(), &model.Session{
		Token: raw,
		User:  &model.User{Email: claims.Email, Role: claims.Role},
	})
	if err != nil {
		h.log.Error("failed starting session", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.log.Info("user logged in", zap.String("email", claims.Email), zap.String("role", claims.Role))
	http.Redirect(w, r, view.CatalogPath, http.StatusSeeOther)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.log.Error("failed destroying session", zap.Error(err))
	}
	http.Redirect(w, r, view.CatalogPath, http.StatusSeeOther)
}
