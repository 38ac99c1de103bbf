// Package renderer turns cost basis summaries, simulations and
// projections into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/openfolio/costbasis"
)

//go:embed templates/*.md
var templates embed.FS

// RenderSummary renders a cost basis summary to a markdown string.
func RenderSummary(s *costbasis.Summary) string {
	partials := map[string]string{
		"summary_tax":  "templates/summary_tax.md",
		"summary_lots": "templates/summary_lots.md",
	}
	return renderTemplate("summary", "templates/summary.md", partials, s)
}

// RenderSimulation renders a historical replay to a markdown string.
func RenderSimulation(sim *costbasis.Simulation) string {
	partials := map[string]string{
		"simulation_steps": "templates/simulation_steps.md",
	}
	return renderTemplate("simulation", "templates/simulation.md", partials, sim)
}

// RenderProjection renders a forward projection to a markdown string.
func RenderProjection(p *costbasis.Projection) string {
	partials := map[string]string{
		"projection_steps": "templates/projection_steps.md",
	}
	return renderTemplate("projection", "templates/projection.md", partials, p)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
