package briefing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var briefingTemplate = template.Must(template.New("briefing").Parse(`<html><body>
<h2>Daily Job Search Briefing</h2>
<p class="date">{{.Date}} &middot; {{.Total}} companies tracked</p>
{{- if .Statuses}}
<h3>Pipeline Status</h3>
<ul class="statuses">
{{- range .Statuses}}
<li>{{.Label}}: {{.Count}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .FollowUps}}
<h3>Needs Follow-up</h3>
<ul class="followups">
{{- range .FollowUps}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .NewCompanies}}
<h3>New Companies Added</h3>
<ul class="new-companies">
{{- range .NewCompanies}}
<li><b>{{.Company}}</b> ({{.Industry}}) - {{.Priority}} priority</li>
{{- end}}
</ul>
{{- end}}
<h3>Today's Actions</h3>
<ul class="actions">
{{- range .Actions}}
<li>{{.}}</li>
{{- end}}
</ul>
</body></html>
`))

// HTML renders the briefing as an HTML document. Sections with nothing to
// report are left out.
func (b *Briefing) HTML() (string, error) {
	var buf bytes.Buffer
	if err := briefingTemplate.Execute(&buf, b); err != nil {
		return "", fmt.Errorf("render briefing: %w", err)
	}
	return buf.String(), nil
}

// Text is the plain-text form of the briefing, for text-only channels.
func (b *Briefing) Text() (string, error) {
	html, err := b.HTML()
	if err != nil {
		return "", err
	}
	return htmlToText(html)
}

// htmlToText flattens rendered HTML: headings on their own lines, list items
// as "- " bullets.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse briefing html: %w", err)
	}

	var b strings.Builder
	doc.Find("h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		switch goquery.NodeName(s) {
		case "h3":
			b.WriteString("\n" + text + "\n")
		case "li":
			b.WriteString("- " + text + "\n")
		default:
			b.WriteString(text + "\n")
		}
	})
	return b.String(), nil
}
