// Package svgedit rewrites GSEA enrichment plot SVGs: it replaces the stock
// title with a dataset-qualified one and injects the statistics extracted
// from the companion HTML report.
package svgedit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gseakit/gseakit/internal/stats"
)

var (
	titleRe = regexp.MustCompile(`(<text\b[^>]*>)([^<]*Enrichment plot:[^<]*)(</text>)`)
	xAttrRe = regexp.MustCompile(`\bx="[^"]*"`)
	styleRe = regexp.MustCompile(`style="([^"]*)"`)
)

// Title placement constants matching the GSEA plot layout.
const (
	titleX       = "63"
	statsX       = 350
	statsYStart  = 50
	statsSpacing = 18
)

// Rewrite returns the SVG with its title element retitled and left-aligned,
// and a statistics block appended in the upper right corner.
func Rewrite(svg []byte, accession, geneSet string, vals stats.Values) ([]byte, error) {
	content := string(svg)

	loc := titleRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return nil, fmt.Errorf("no enrichment plot title element found")
	}

	openTag := content[loc[2]:loc[3]]
	closeTag := content[loc[6]:loc[7]]
	title := fmt.Sprintf("%s - %s Enrichment", accession, geneSet)

	content = content[:loc[0]] + retitleTag(openTag) + escapeText(title) + closeTag + content[loc[1]:]

	statsGroup := buildStatsGroup(vals)
	end := strings.LastIndex(content, "</svg>")
	if end < 0 {
		return nil, fmt.Errorf("no closing svg element found")
	}
	content = content[:end] + statsGroup + content[end:]

	return []byte(content), nil
}

// retitleTag left-aligns and bolds the title's opening <text> tag.
func retitleTag(tag string) string {
	if xAttrRe.MatchString(tag) {
		tag = xAttrRe.ReplaceAllString(tag, `x="`+titleX+`"`)
	} else {
		tag = strings.TrimSuffix(tag, ">") + ` x="` + titleX + `">`
	}

	if m := styleRe.FindStringSubmatch(tag); m != nil {
		if !strings.Contains(m[1], "font-weight:bold") {
			tag = styleRe.ReplaceAllString(tag, `style="`+m[1]+`; font-weight:bold"`)
		}
	} else {
		tag = strings.TrimSuffix(tag, ">") +
			` style="font-weight:bold; font-family:sans-serif; font-size:18px">`
	}
	return tag
}

// buildStatsGroup renders the three statistics lines as an SVG group.
func buildStatsGroup(vals stats.Values) string {
	lines := []string{
		"NES: " + vals.NES,
		"NOM p-val: " + vals.PValue,
		"FDR q-val: " + vals.FDR,
	}

	var b strings.Builder
	b.WriteString(`<g style="font-family:sans-serif; font-size:12px; fill:black;">`)
	for i, line := range lines {
		fmt.Fprintf(&b, `<text x="%d" y="%d" style="stroke:none;">%s</text>`,
			statsX, statsYStart+i*statsSpacing, escapeText(line))
	}
	b.WriteString(`</g>`)
	return b.String()
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
