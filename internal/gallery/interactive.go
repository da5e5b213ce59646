package gallery

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"
)

// interactiveTemplate renders a gallery with a dataset multi-selector: the
// plots of a dataset are only shown after its checkbox is ticked.
var interactiveTemplate = template.Must(template.New("interactive").Parse(`<!DOCTYPE html>
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
.selection-panel {
    background: #f8f9fa;
    padding: 30px;
    border-bottom: 3px solid #667eea;
}
.selection-panel h2 { color: #667eea; margin-bottom: 15px; }
.dataset-options {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(160px, 1fr));
    gap: 8px;
    background: white;
    border: 2px solid #667eea;
    border-radius: 8px;
    padding: 15px;
}
.dataset-option label { margin-left: 6px; }
.buttons { margin-top: 15px; display: flex; gap: 10px; }
button {
    background: #667eea;
    color: white;
    border: none;
    border-radius: 6px;
    padding: 10px 18px;
    font-size: 1em;
    cursor: pointer;
}
button:hover { background: #764ba2; }
#gallery { padding: 30px; }
.dataset { margin-bottom: 30px; }
.dataset h2 { color: #667eea; margin-bottom: 15px; }
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
footer { padding: 20px; text-align: center; color: #555; font-style: italic; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>{{.Title}}</h1>
<p>Select datasets to display ({{.DatasetCount}} available)</p>
</header>
<div class="selection-panel">
<h2>Datasets</h2>
<div class="dataset-options">
{{range .Datasets}}<div class="dataset-option"><input type="checkbox" id="gse_{{.}}" value="{{.}}"><label for="gse_{{.}}">{{.}}</label></div>
{{end}}</div>
<div class="buttons">
<button onclick="selectAll(true)">Select All</button>
<button onclick="selectAll(false)">Clear</button>
<button onclick="renderGallery()">Show Plots</button>
</div>
</div>
<div id="gallery"></div>
<footer>Generated {{.Date}}</footer>
</div>
<script>
const datasetImages = {{.DatasetJSON}};

function selectAll(on) {
    document.querySelectorAll('.dataset-option input').forEach(cb => { cb.checked = on; });
}

function plotCard(title, src) {
    if (!src) { return ''; }
    return '<div class="plot-card"><h3>' + title + '</h3><img src="' + src + '"></div>';
}

function renderGallery() {
    const gallery = document.getElementById('gallery');
    gallery.innerHTML = '';
    document.querySelectorAll('.dataset-option input:checked').forEach(cb => {
        const ds = cb.value;
        const images = datasetImages[ds];
        if (!images) { return; }
        const section = document.createElement('section');
        section.className = 'dataset';
        section.innerHTML = '<h2>' + ds + images.diffSuffix + '</h2><div class="plots">'
            + plotCard('Upregulated Genes', images.up)
            + plotCard('Downregulated Genes', images.down)
            + plotCard('DOXSET_1 Genes', images.dox)
            + plotCard('DOXSET_RINN (Curated)', images.dox_rinn)
            + '</div>';
        gallery.appendChild(section);
    });
}
</script>
</body>
</html>
`))

type interactiveData struct {
	Title        string
	Date         string
	Datasets     []string
	DatasetCount int
	DatasetJSON  template.JS
}

type datasetImages struct {
	Up         string `json:"up"`
	Down       string `json:"down"`
	Dox        string `json:"dox"`
	DoxRinn    string `json:"dox_rinn"`
	DiffSuffix string `json:"diffSuffix"`
}

// WriteInteractive renders the interactive gallery to w.
func WriteInteractive(w io.Writer, m *Manifest, title string, now time.Time) error {
	if title == "" {
		title = "GSEA Enrichment Plots - Interactive Gallery"
	}

	lookup := make(map[string]datasetImages, len(m.Entries))
	for _, e := range m.Entries {
		suffix := ""
		if e.DiffOfClasses {
			suffix = " (Diff of Classes)"
		}
		lookup[e.Dataset] = datasetImages{
			Up:         string(e.Up),
			Down:       string(e.Down),
			Dox:        string(e.Dox),
			DoxRinn:    string(e.DoxRinn),
			DiffSuffix: suffix,
		}
	}

	encoded, err := json.Marshal(lookup)
	if err != nil {
		return fmt.Errorf("encode dataset map: %w", err)
	}

	return interactiveTemplate.Execute(w, interactiveData{
		Title:        title,
		Date:         now.Format("January 2, 2006"),
		Datasets:     m.Datasets(),
		DatasetCount: len(m.Entries),
		DatasetJSON:  template.JS(encoded),
	})
}
