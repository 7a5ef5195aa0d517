package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageDashboard    = "dashboard"
	PageApplications = "applications"
	PageLogin        = "login"
	PageSignup       = "signup"
)

// contentTemplates maps CurrentPage to the content template rendered into the
// shell's main area.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageDashboard:    "dashboard-content",
	PageApplications: "applications-content",
	PageLogin:        "login-content",
	PageSignup:       "signup-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
