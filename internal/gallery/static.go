package gallery

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

// staticTemplate renders the self-contained gallery: every dataset section
// shows its plots side by side, no scripting required.
var staticTemplate = template.Must(template.New("static").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    padding: 20px;
    min-height: 100vh;
}
.container {
    max-width: 1800px;
    margin: 0 auto;
    background: white;
    border-radius: 15px;
    box-shadow: 0 20px 60px rgba(0,0,0,0.3);
    overflow: hidden;
}
header {
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    color: white;
    padding: 30px;
    text-align: center;
}
header h1 { font-size: 2.5em; margin-bottom: 10px; }
header p { font-size: 1.2em; opacity: 0.95; }
.dataset {
    padding: 30px;
    border-bottom: 3px solid #f0f0f0;
}
.dataset h2 { color: #667eea; margin-bottom: 20px; }
.plots {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(380px, 1fr));
    gap: 20px;
}
.plot-card {
    border: 2px solid #e0e0e0;
    border-radius: 8px;
    padding: 10px;
    text-align: center;
}
.plot-card h3 { font-size: 1em; color: #2c3e50; margin-bottom: 8px; }
.plot-card img { width: 100%; height: auto; }
.plot-card.up { background: #ffebee; }
.plot-card.down { background: #e3f2fd; }
.plot-card.dox { background: #fff3e0; }
.plot-card.dox-rinn { background: #f3e5f5; }
footer {
    padding: 20px;
    text-align: center;
    color: #555;
    font-style: italic;
}
</style>
</head>
<body>
<div class="container">
<header>
<h1>{{.Title}}</h1>
<p>{{.Subtitle}}</p>
</header>
{{range .Entries}}
<section class="dataset">
<h2>{{.Dataset}}{{if .DiffOfClasses}} (Diff of Classes){{end}}</h2>
<div class="plots">
<div class="plot-card up"><h3>Upregulated Genes</h3><img src="{{.Up}}" alt="{{.Dataset}} upregulated"></div>
<div class="plot-card down"><h3>Downregulated Genes</h3><img src="{{.Down}}" alt="{{.Dataset}} downregulated"></div>
<div class="plot-card dox"><h3>DOXSET_1 Genes</h3><img src="{{.Dox}}" alt="{{.Dataset}} DOXSET_1"></div>
{{if .DoxRinn}}<div class="plot-card dox-rinn"><h3>DOXSET_RINN (Curated)</h3><img src="{{.DoxRinn}}" alt="{{.Dataset}} DOXSET_RINN"></div>{{end}}
</div>
</section>
{{end}}
<footer>Generated {{.Date}} &middot; {{len .Entries}} datasets</footer>
</div>
</body>
</html>
`))

type staticData struct {
	Title    string
	Subtitle string
	Date     string
	Entries  []Entry
}

// WriteStatic renders the static gallery to w.
func WriteStatic(w io.Writer, m *Manifest, title, subtitle string, now time.Time) error {
	if title == "" {
		title = "GSEA Enrichment Plots Gallery"
	}
	if subtitle == "" {
		subtitle = fmt.Sprintf("Enrichment results across %d GEO datasets", len(m.Entries))
	}
	return staticTemplate.Execute(w, staticData{
		Title:    title,
		Subtitle: subtitle,
		Date:     now.Format("January 2, 2006"),
		Entries:  m.Entries,
	})
}
