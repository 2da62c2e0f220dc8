// Package renderer turns engine results into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
)

//go:embed *.md
var templates embed.FS

// funcs are available to every template.
var funcs = template.FuncMap{
	"pct": patrimoine.FormatPercent,
	// label returns the name of a record, or its id when it has none.
	"label": func(id, name string) string {
		if name == "" {
			return id
		}
		return name
	},
	"ratio": func(r patrimoine.Ratio) string { return r.Percent().String() },
	"check": func(b bool) string {
		if b {
			return "✓"
		}
		return ""
	},
	"rate": func(r float64) string { return fmt.Sprintf("%.2f%%", r) },
	"default": func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	},
}

// RenderSummary renders the portfolio summary.
func RenderSummary(s *patrimoine.Summary) string {
	partials := map[string]string{
		"summary_totals":     "summary_totals.md",
		"summary_properties": "summary_properties.md",
		"summary_warnings":   "summary_warnings.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderProperty renders the detailed report of a property.
func RenderProperty(v *PropertyView) string {
	partials := map[string]string{
		"property_cashflow":    "property_cashflow.md",
		"property_rentability": "property_rentability.md",
		"property_loan":        "",
	}
	if v.Loan != nil {
		partials["property_loan"] = "property_loan.md"
	}
	return renderTemplate("property", "property.md", partials, v)
}

// RenderLots renders the lots of a property.
func RenderLots(v *LotsView) string {
	return renderTemplate("lots", "lots.md", nil, v)
}

// RenderSchedule renders an amortization table.
func RenderSchedule(v *ScheduleView) string {
	return renderTemplate("schedule", "schedule.md", nil, v)
}

// RenderCollection renders the realized collection of a property.
func RenderCollection(v *CollectionView) string {
	return renderTemplate("collected", "collected.md", nil, v)
}

// RenderProjection renders the net worth projection.
func RenderProjection(v *ProjectionView) string {
	return renderTemplate("projection", "projection.md", nil, v)
}

// RenderIssues renders the record sanity issues.
func RenderIssues(issues []patrimoine.Issue) string {
	return renderTemplate("issues", "issues.md", nil, issues)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
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
