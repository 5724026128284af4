// Package fragments provides template path constants for organized template management
package fragments

// Template path constants; each file defines a template under its own path
const (
	// Layout templates
	Page   = "layout/page.html"
	Header = "layout/header.html"
	Footer = "layout/footer.html"

	// Dashboard templates
	Section = "dashboard/section.html"
	Chart   = "dashboard/chart.html"
	Report  = "dashboard/report.html"
)

// GetAllTemplatePaths returns all template paths for registration
func GetAllTemplatePaths() []string {
	return []string{
		// Layout
		Page,
		Header,
		Footer,

		// Dashboard
		Section,
		Chart,
		Report,
	}
}
