package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jobagent/jobagent/internal/http/ui/viewmodel"
)

// UIHandlers serves browser-facing routes. Every authenticated page renders
// inside the shell layout: sidebar, header, main content, and the mobile nav
// overlay.
type UIHandlers struct {
	T      *TemplateRenderer
	Logger *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// layoutFor assembles the shared chrome data for a page. The mobile nav
// always starts closed on a fresh render; opening it is a client-side
// interaction that never survives a navigation.
func (h *UIHandlers) layoutFor(r *http.Request, currentPage, pageTitle string) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       "JobAgent",
		PageTitle:   pageTitle,
		CurrentPage: currentPage,
		CSRFToken:   GetCSRFToken(r),
		Nav:         viewmodel.ClosedNav(),
	}

	if session, ok := GetUserSessionFromContext(r.Context()); ok {
		layout.IsAuthenticated = true
		layout.IsAdmin = session.IsAdmin()
		layout.User = &viewmodel.User{
			Email: session.Email,
			Role:  string(session.Role),
		}
	}

	return layout
}

func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, layout viewmodel.Layout) {
	var err error
	if IsHTMX(r) {
		err = h.T.RenderPartial(w, r, layout)
	} else {
		err = h.T.RenderFull(w, r, layout)
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "render failed",
			"page", layout.CurrentPage, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Dashboard handles GET /.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.layoutFor(r, PageDashboard, "Dashboard"))
}

// Applications handles GET /applications. Tracking itself is not built yet;
// the page renders an empty state inside the shell.
func (h *UIHandlers) Applications(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.layoutFor(r, PageApplications, "Applications"))
}

// Login handles GET /login. Signed-in users are sent to the dashboard.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, h.layoutFor(r, PageLogin, "Sign in"))
}

// Signup handles GET /signup. Signed-in users are sent to the dashboard.
func (h *UIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	if IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, h.layoutFor(r, PageSignup, "Create account"))
}
