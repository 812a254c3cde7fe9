package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Customer Language Message Map</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background: #f5f5f5;
        }
        .container { background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        h2 { color: #34495e; margin-top: 30px; border-left: 4px solid #3498db; padding-left: 10px; }
        h3 { color: #7f8c8d; }
        .meta { color: #7f8c8d; font-size: 14px; }
        .summary { background: #ecf0f1; padding: 20px; border-radius: 5px; margin: 20px 0; }
        .quote { border-left: 4px solid #3498db; padding-left: 15px; margin: 10px 0; font-style: italic; color: #555; white-space: pre-wrap; }
        .hook { background: #e8f8f5; padding: 10px 15px; margin: 10px 0; border-radius: 5px; border-left: 3px solid #27ae60; }
        .pain-point { background: #fdedec; padding: 15px; margin: 15px 0; border-radius: 5px; border-left: 3px solid #e74c3c; }
        .emotion { background: #fff9e6; padding: 15px; margin: 15px 0; border-radius: 5px; border-left: 3px solid #f39c12; }
        .stage { background: #f4f6f7; padding: 15px; margin: 15px 0; border-radius: 5px; }
        .framework { background: #f0f8ff; padding: 15px; margin: 15px 0; border-radius: 5px; border: 1px solid #3498db; }
        .objection { padding: 10px 15px; margin: 10px 0; border-bottom: 1px dashed #ccc; }
        .degraded { background: #fef5e7; padding: 10px 15px; border-radius: 5px; white-space: pre-wrap; font-size: 13px; }
        .badge { display: inline-block; padding: 3px 8px; border-radius: 3px; font-size: 12px; font-weight: bold; margin-right: 5px; }
        .badge-high, .badge-critical { background: #e74c3c; color: white; }
        .badge-medium, .badge-major { background: #f39c12; color: white; }
        .badge-low, .badge-minor { background: #27ae60; color: white; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Customer Language Message Map</h1>
        <p class="meta"><strong>Generated:</strong> {{or .GeneratedAt "N/A"}}{{if .Query}} &bull; <strong>Query:</strong> {{.Query}}{{end}}{{if .Context}} &bull; <strong>Context:</strong> {{.Context}}{{end}}{{if .Sources}} &bull; <strong>Sources:</strong> {{join .Sources ", "}}{{end}}</p>

        <div class="summary">
            <h2>{{index .Titles 0}}</h2>
            <p><strong>Top Pain Point:</strong> {{.Summary.TopPainPoint}}</p>
            <p><strong>Dominant Emotion:</strong> {{.Summary.DominantEmotion}}</p>
            <p><strong>Primary Desire:</strong> {{.Summary.PrimaryDesire}}</p>
            <p><strong>Patterns Identified:</strong> {{.Summary.TotalEmotionalPatterns}} emotional patterns,
               {{.Summary.TotalPainPoints}} pain points,
               {{.Summary.TotalDesireTriggers}} desire triggers</p>
{{- with .RawSummary}}
            <p><strong>Items Analyzed:</strong> {{.TotalItems}}{{range $.RawSources}} &bull; {{.Key}}: {{.Value}}{{end}}</p>
            <p><strong>Date Range:</strong> {{.DateRange.Earliest}} to {{.DateRange.Latest}}</p>
{{- end}}
{{- range .Passes}}
            <p><strong>{{.Name}} ({{.Status}}):</strong></p>
            <div class="degraded">{{.Detail}}</div>
{{- end}}
        </div>

        <h2>{{index .Titles 1}}</h2>
        <ul>
{{- range .KeyInsights}}
            <li>{{.}}</li>
{{- end}}
        </ul>

        <h2>{{index .Titles 2}}</h2>
{{- range .PainPoints}}
        <div class="pain-point">
            <h3>{{or .Description "N/A"}}{{if .Severity}} <span class="{{badge .Severity}}">{{.Severity}}</span>{{end}}</h3>
{{- if .FrequencyMentioned}}
            <p><strong>Frequency Mentioned:</strong> {{.FrequencyMentioned}}</p>
{{- end}}
{{- if .BeforeState}}
            <p><strong>Before:</strong> {{.BeforeState}}</p>
{{- end}}
{{- if .DesiredOutcome}}
            <p><strong>Desired Outcome:</strong> {{.DesiredOutcome}}</p>
{{- end}}
            <p><strong>Customer Quotes:</strong></p>
{{- range .Quotes}}
            <div class="quote">{{.}}</div>
{{- end}}
        </div>
{{- end}}

        <h2>{{index .Titles 3}}</h2>
{{- range .Emotions}}
        <div class="emotion">
            <h3>{{title (or .Emotion "N/A")}}{{if .Frequency}} <span class="{{badge .Frequency}}">{{.Frequency}}</span>{{end}}</h3>
            <p><strong>Advertising Angle:</strong> {{or .AdvertisingAngle "N/A"}}</p>
{{- if .TriggerWords}}
            <p><strong>Trigger Words:</strong> {{join .TriggerWords ", "}}</p>
{{- end}}
            <p><strong>Example Quotes:</strong></p>
{{- range .ExampleQuotes}}
            <div class="quote">{{.}}</div>
{{- end}}
        </div>
{{- end}}

        <h2>{{index .Titles 4}}</h2>
{{- range .Stages}}
        <div class="stage">
            <h3>{{.Title}}</h3>
            <p><strong>Key Phrases:</strong></p>
            <ul>
{{- range .Indicators}}
                <li>{{.}}</li>
{{- end}}
            </ul>
            <p><strong>Example Quotes:</strong></p>
{{- range .Quotes}}
            <div class="quote">{{.}}</div>
{{- end}}
{{- if .Records}}
            <p><strong>Categorized Records ({{len .Records}}):</strong></p>
            <ul>
{{- range .Records}}
                <li>[{{or .Source "N/A"}}] {{.Text}}</li>
{{- end}}
            </ul>
{{- end}}
        </div>
{{- end}}

        <h2>{{index .Titles 5}}</h2>
{{- range .Hooks}}
        <h3>{{.Title}}</h3>
{{- range .Hooks}}
        <div class="hook">{{.}}</div>
{{- end}}
{{- end}}
{{- if .Headlines}}
        <h3>Headline Formulas</h3>
{{- range .Headlines}}
        <div class="hook">{{.}}</div>
{{- end}}
{{- end}}

        <h2>{{index .Titles 6}}</h2>
{{- range .Frameworks}}
        <div class="framework">
            <h3>{{or .Name "N/A"}}</h3>
            <p><strong>Target Awareness:</strong> {{or .Target "N/A"}}</p>
{{- if .Structure}}
            <ul>
{{- range .Structure}}
                <li><strong>{{.Key}}:</strong> {{.Value}}</li>
{{- end}}
            </ul>
{{- end}}
            <p><strong>Example:</strong></p>
            <div class="quote">{{or .Example "N/A"}}</div>
        </div>
{{- end}}

        <h2>{{index .Titles 7}}</h2>
        <ul>
{{- range .CTAs}}
            <li>{{.}}</li>
{{- end}}
        </ul>

        <h2>{{index .Titles 8}}</h2>
{{- range .Objections}}
        <div class="objection">
            <p><strong>Objection:</strong> {{or .Objection "N/A"}}</p>
            <p><strong>Response:</strong> {{or .Response "N/A"}}</p>
        </div>
{{- end}}
    </div>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"badge": badgeClass,
	"title": titleCase,
	"join":  strings.Join,
}).Parse(htmlTpl))

// HTML 渲染为带样式的 HTML 页面
func HTML(mm *model.MessageMap) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, newView(mm)); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
