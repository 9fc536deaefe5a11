package reporter

// reportTemplate is the whole report document. Inline CSS only, so the file
// is viewable as a plain static file.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: sans-serif;
            margin: 20px;
        }
        table {
            border-collapse: collapse;
            margin-bottom: 20px;
        }
        th, td {
            border: 1px solid black;
            padding: 8px;
            text-align: left;
            vertical-align: top;
        }
        th {
            font-weight: bold;
        }
        ul {
            margin: 0;
            padding-left: 20px;
        }
        li {
            margin-bottom: 2px;
        }
        .unmapped {
            color: #b00;
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
{{range .Applications}}
    <h2>{{.Name}}</h2>

    <h3>1. Suggested Categories and Semantics</h3>
    <p>The universal categories applied to this application's fields (Core is app-specific and excluded)</p>
    <table class="suggested">
        <thead>
            <tr><th>Type</th><th>Structure</th></tr>
        </thead>
        <tbody>
{{range .Suggested}}            <tr>
                <td><strong>{{.Label}}</strong></td>
                <td>{{template "plain" .}}</td>
            </tr>
{{end}}        </tbody>
    </table>

    <h3>&#9888;&#65039; 2. Current Existing Structure</h3>
    <p>The existing inconsistent grouping as found in the worksheet</p>
    <table class="current">
        <thead>
            <tr><th>Type</th><th>Structure</th></tr>
        </thead>
        <tbody>
{{range .Current}}            <tr>
                <td><strong>{{.Label}}</strong></td>
                <td>{{template "plain" .}}</td>
            </tr>
{{end}}        </tbody>
    </table>

    <h3>&#10024; 3. New Structure with Semantic Dictionary</h3>
    <p>Canonical semantic keys with display names and migration mapping from current field names</p>
    <table class="normalized">
        <thead>
            <tr><th>Type</th><th>Structure</th></tr>
        </thead>
        <tbody>
{{range .Normalized}}            <tr>
                <td><strong>{{.Label}}</strong></td>
                <td>{{template "normalized" .}}</td>
            </tr>
{{end}}        </tbody>
    </table>
{{end}}
    <h2>Unmapped Fields</h2>
{{if .Unmapped}}    <p>{{.UnmappedCount}} field(s) have no semantic dictionary entry and were passed through unchanged:</p>
    <ul class="unmapped-list">
{{range .Unmapped}}        <li>{{.}}</li>
{{end}}    </ul>
{{else}}    <p>Every field has a semantic dictionary entry.</p>
{{end}}
    <p><strong>Legend:</strong></p>
    <ul>
        <li><strong>semantic.key</strong> - Official semantic dictionary field name</li>
        <li><strong>Display Name</strong> - Human-readable English name for UI</li>
        <li><em>(was: current_name)</em> - Original field name for migration mapping</li>
    </ul>
</body>
</html>
{{define "plain"}}{{if .Categories}}<ul>{{range .Categories}}<li><strong>{{.Name}}</strong>{{if .Fields}}<ul>{{range .Fields}}<li>{{.Key}}{{if .Values}}<ul>{{range .Values}}<li>{{.}}</li>{{end}}</ul>{{end}}</li>{{end}}</ul>{{end}}</li>{{end}}</ul>{{else}}<ul><li>No categories</li></ul>{{end}}{{end}}
{{define "normalized"}}{{if .Categories}}<ul>{{range .Categories}}<li><strong>{{.Name}}</strong>{{if .Fields}}<ul>{{range .Fields}}<li{{if .Unmapped}} class="unmapped"{{end}}><code>{{.Key}}</code>{{if .DisplayName}} - {{.DisplayName}}{{end}}{{if .Was}} <em>(was: {{.Was}})</em>{{end}}{{if .Values}}<ul>{{range .Values}}<li>{{.}}</li>{{end}}</ul>{{end}}</li>{{end}}</ul>{{end}}</li>{{end}}</ul>{{else}}<ul><li>No categories</li></ul>{{end}}{{end}}
`
