package notifier

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

var reportTemplate = template.Must(template.New("weekly").Funcs(template.FuncMap{
	"num": formatNum,
	"pct": func(v float64) string { return fmt.Sprintf("%+.2f%%", v) },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>Análisis Semanal de CEDEARS - {{.Date}}</title>
<style>
body { font-family: Arial, sans-serif; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: right; }
th { background: #2c3e50; color: #fff; }
td.ticker { text-align: left; font-weight: bold; }
.bullish { color: #1d7a34; }
.bearish { color: #b02a1e; }
.sideways, .insufficient_data { color: #777; }
.failures { color: #b02a1e; margin-top: 1em; }
</style>
</head>
<body>
<h2>Análisis Semanal de CEDEARS — {{.Date}}</h2>
<p>{{.Total}} instrumentos analizados.</p>
<table>
<tr>
<th>Ticker</th><th>Precio</th><th>RSI</th><th>MACD</th><th>Tendencia</th>
<th>Momentum 7d</th><th>Soporte</th><th>Resistencia</th><th>Volumen</th>
</tr>
{{range .Snapshots}}
<tr>
<td class="ticker">{{.Ticker}}</td>
<td>{{num .CurrentPrice}}</td>
<td>{{num .RSI}}</td>
<td>{{num .MACD.Value}}</td>
<td class="{{.Trend.Direction}}">{{.Trend.Direction}}</td>
<td>{{pct .Momentum.SevenDay}}</td>
<td>{{num .SupportResistance.Support}}</td>
<td>{{num .SupportResistance.Resistance}}</td>
<td>{{.Volume.Trend}}</td>
</tr>
{{end}}
</table>
{{if .Failures}}
<div class="failures">
<p>Sin datos para:</p>
<ul>{{range .Failures}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}
</body>
</html>`))

func formatNum(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.2f", *v)
}

// FormatWeeklyReport renders the HTML weekly report for a batch of
// snapshots. Failures lists tickers whose analysis could not run.
func FormatWeeklyReport(snapshots []*model.AnalysisSnapshot, failures []string) (string, error) {
	data := struct {
		Date      string
		Total     int
		Snapshots []*model.AnalysisSnapshot
		Failures  []string
	}{
		Date:      time.Now().Format("02/01/2006"),
		Total:     len(snapshots),
		Snapshots: snapshots,
		Failures:  failures,
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}

// ReportSubject builds the email subject line for a weekly run.
func ReportSubject(now time.Time) string {
	return fmt.Sprintf("Análisis Semanal de CEDEARS — %s", now.Format("02/01/2006"))
}
