package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	jobagent "github.com/jobagent/jobagent"
	"github.com/jobagent/jobagent/internal/ports"
	"github.com/jobagent/jobagent/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth ports.AuthProvider
	// SSO is nil unless the sso auth mode is configured.
	SSO            *service.SSOService
	CookieDomain   string
	TrustedOrigins []string
	// IsDev loads templates and static assets from disk instead of the
	// embedded copies, so edits show up without a rebuild.
	IsDev  bool
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP handler tree. The middleware
// order matters: panics are caught first, every request is logged, then the
// origin allow-list and CSRF checks run before any handler.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := assetFilesystems(services.IsDev)
	if err != nil {
		return nil, err
	}
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Auth:         services.Auth,
		SSO:          services.SSO,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	uiHandlers := &UIHandlers{T: renderer, Logger: logger}

	registerAuthRoutes(mux, authHandlers)
	registerUIRoutes(mux, uiHandlers, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	var handler http.Handler = mux
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(handler)
	handler = TrustedOrigins(services.TrustedOrigins)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)

	return handler, nil
}

func assetFilesystems(isDev bool) (templates fs.FS, static fs.FS, err error) {
	if isDev {
		return os.DirFS("frontend/templates"), os.DirFS("frontend/static"), nil
	}
	templates, err = fs.Sub(jobagent.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, nil, err
	}
	static, err = fs.Sub(jobagent.StaticFS, "frontend/static")
	if err != nil {
		return nil, nil, err
	}
	return templates, static, nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/signup", h.SignUp)
	mux.HandleFunc("POST /auth/signin", h.SignIn)
	mux.HandleFunc("POST /auth/signout", h.SignOut)
	mux.HandleFunc("GET /auth/session", h.Session)
	mux.HandleFunc("GET /auth/sso/login", h.SSOLogin)
	mux.HandleFunc("GET /auth/sso/callback", h.SSOCallback)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, auth ports.AuthProvider) {
	requireAuth := RequireAuth(auth)
	optionalAuth := OptionalAuth(auth)

	mux.Handle("GET /{$}", requireAuth(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /applications", requireAuth(http.HandlerFunc(h.Applications)))
	mux.Handle("GET /login", optionalAuth(http.HandlerFunc(h.Login)))
	mux.Handle("GET /signup", optionalAuth(http.HandlerFunc(h.Signup)))
}
