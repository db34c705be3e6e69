// Package renderer turns engine reports into markdown text, fixed-width text
// charts, and PNG images.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"

	"github.com/perriv/folio"
)

// compositionTemplate renders a point-in-time composition report as a
// markdown table.
const compositionTemplate = `# {{.Portfolio}}: composition on {{.Date}}
{{if .Holdings}}
| Security | Name | Quantity | Avg Price | Last Trade |
|---|---|---:|---:|---|
{{- range .Holdings}}
| {{.Ticker}} | {{.Name}} | {{quantity .Quantity}} | {{amount .AveragePrice}} | {{.LastTradeOn}} |
{{- end}}
{{else}}
No position held on {{.Date}}.
{{end}}`

// Composition renders a composition report to markdown.
func Composition(report folio.CompositionReport) string {
	return render("composition", compositionTemplate, report)
}

// render executes a template over data; template errors cannot happen for
// well-formed reports, so they surface in the output rather than as errors.
func render(name, text string, data any) string {
	tmpl := template.Must(template.New(name).Funcs(helpers()).Parse(text))
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("render %s: %v", name, err)
	}
	return b.String()
}

func helpers() template.FuncMap {
	return template.FuncMap{
		"amount":   Amount,
		"quantity": Quantity,
	}
}

// Amount formats a monetary value in the display currency.
func Amount(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

// Quantity formats a share quantity, trimming trailing zeros.
func Quantity(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
