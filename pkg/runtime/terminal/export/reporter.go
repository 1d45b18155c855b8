package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  24,
		ValueWidth: 14,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
Emission report for {{.User}}
{{if .Period}}Period: {{.Period.From.Format "2006-01-02"}} to {{.Period.To.Format "2006-01-02"}}{{else}}No activity recorded{{end}}
Total: {{kg .Summary.TotalEmission}} kg CO2e
Budget: {{.Budget.Level}} ({{kg .Budget.TotalEmission}} of {{kg .Budget.Limit}} kg)

=== By category ===
{{separator}}
{{formatRow "Category" "CO2e (kg)"}}
{{separator}}
{{range $name, $value := .Summary.ByCategory}}{{formatRow $name (kg $value)}}
{{end}}{{separator}}

=== By month ===
{{separator}}
{{formatRow "Month" "CO2e (kg)"}}
{{separator}}
{{range $month, $value := .Monthly.MonthlyEmission}}{{formatRow $month (kg $value)}}
{{end}}{{separator}}
`

// Handle renders a report as text. Maps are printed in key order, so months
// come out chronologically.
func (c *Reporter) Handle(report *domain.EmissionReport) error {
	funcMap := template.FuncMap{
		"kg": func(value float64) string {
			return fmt.Sprintf("%.2f", value)
		},
		"formatRow": func(name string, value string) string {
			return fmt.Sprintf("| %-*s | %*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// JSON writes v as indented JSON.
func (c *Reporter) JSON(v any) error {
	encoder := json.NewEncoder(c.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
