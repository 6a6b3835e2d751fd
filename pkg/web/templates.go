package web

import (
	"bytes"
	"html/template"

	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/results"
	"github.com/mpapenbr/race-results-hub/pkg/route"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// ── Page data ────────────────────────────────────────────────────────────────

type listData struct {
	Search string
	Races  []model.RaceDescriptor
	// Watch enables live updates of the list on manifest changes
	Watch bool
}

type detailData struct {
	Title     string
	Slug      string
	FilterURL string
	Driver    string
	Detail    *results.Detail
}

type pageData struct {
	Title         string
	DatastarURL   string
	List          listData
	Detail        *detailData
	StatusMessage string
}

var funcMap = template.FuncMap{
	"location": route.Location,
	"marker":   func() string { return results.FastestLapMarker },
	"markerTitle": func() string {
		return results.FastestLapTitle
	},
}

// ── Layout ───────────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<script type="module" src="{{.DatastarURL}}"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#0d1117;color:#c9d1d9;font-size:14px;line-height:1.5;padding:16px}
a{color:#58a6ff;text-decoration:none}
h1{font-size:18px;color:#f0f6fc;margin-bottom:12px}
input[type=search]{width:100%;max-width:480px;padding:6px 10px;background:#161b22;border:1px solid #30363d;border-radius:4px;color:#c9d1d9;margin-bottom:12px}
.race-item{display:block;padding:6px 10px;border-bottom:1px solid #21262d;color:#c9d1d9}
a.race-item:hover{background:#161b22}
.status{color:#f87171;margin-bottom:8px}
.back{display:inline-block;margin-bottom:12px}
.meta-row{padding:2px 0}
.meta-label{color:#8b949e;margin-right:4px}
#linksPanel{display:flex;gap:8px;margin:12px 0}
.race-link-btn{padding:4px 10px;border:1px solid #30363d;border-radius:4px}
table{width:100%;border-collapse:collapse;font-size:13px;margin-top:8px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e}
td{padding:5px 10px;border-bottom:1px solid #21262d}
tr.podium-1 td{background:rgba(255,215,0,.18)}
tr.podium-2 td{background:rgba(192,192,192,.18)}
tr.podium-3 td{background:rgba(205,127,50,.18)}
tr.dnf-row td{color:#8b949e;text-decoration:line-through}
</style>
</head>
<body>
{{if .StatusMessage}}<div class="status">{{.StatusMessage}}</div>{{end}}
{{if .Detail}}{{template "detail" .Detail}}{{else}}{{template "search" .List}}{{end}}
</body>
</html>{{end}}
`

// ── List view ────────────────────────────────────────────────────────────────

const tmplSearch = `
{{define "search"}}<section class="search-section"
{{- if .Watch}} data-signals:manifest-version="0" data-effect="$manifestVersion > 0 && @get('/races/search')"{{end}}>
{{if .Watch}}<div id="manifestUpdates" data-init="@get('/races/updates')"></div>{{end}}
<h1>Race Results Hub</h1>
<form method="get" action="/">
<input type="search" id="raceSearchInput" name="q" value="{{.Search}}" placeholder="Search races..."
 autocomplete="off" data-bind:search data-on:input="@get('/races/search')">
</form>
{{template "raceList" .}}
</section>{{end}}

{{define "raceList"}}<div id="raceList">
{{- range .Races}}<a class="race-item" href="{{location .Slug}}">{{.Title}}</a>
{{- else}}<div class="race-item">No results found</div>{{end -}}
</div>{{end}}
`

// ── Detail view ──────────────────────────────────────────────────────────────

const tmplDetail = `
{{define "detail"}}<section id="raceDetailView">
<a id="backButton" class="back" href="/">&larr; Back to races</a>
<h1>{{.Title}}</h1>
<div id="metadataPanel">
{{- range .Detail.Metadata}}<div class="meta-row"><span class="meta-label">{{.Key}}:</span> <span class="meta-value">{{.Value}}</span></div>
{{- end}}</div>
{{if .Detail.ShowLinks}}<div id="linksPanel">
{{- range .Detail.Links}}<a class="race-link-btn" href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a>
{{- end}}</div>{{end}}
<form method="get" action="/">
<input type="hidden" name="race" value="{{.Slug}}">
<input type="search" id="driverSearchInput" name="driver" value="{{.Driver}}" placeholder="Filter drivers..."
 autocomplete="off" data-bind:driver data-on:input="@get('{{.FilterURL}}')">
</form>
<table id="resultsTable">
<thead id="tableHead"><tr>{{range .Detail.Header}}<th>{{.}}</th>{{end}}</tr></thead>
{{template "tableBody" .Detail}}
</table>
</section>{{end}}

{{define "tableBody"}}<tbody id="tableBody">
{{- range .Rows}}<tr{{with .Class}} class="{{.}}"{{end}}{{if .Hidden}} hidden{{end}}>
{{- range .Cells}}<td>{{.Text}}{{if .FastestLap}} <span title="{{markerTitle}}" style="cursor:help;">{{marker}}</span>{{end}}</td>{{end -}}
</tr>
{{- end}}</tbody>{{end}}
`

var templates = template.Must(
	template.New("page").Funcs(funcMap).Parse(tmplBase + tmplSearch + tmplDetail))

// renderFragment executes a named template into a string (used for SSE patches)
func renderFragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
