// Package web renders the scraped price history into a static HTML report.
package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/atorrez/pricewatch/pkg/model"
)

//go:embed templates
var templatesFs embed.FS

type ReportContext struct {
	Title       string
	GeneratedAt time.Time
	Latest      []model.Snapshot
	History     []model.Snapshot
}

func (c ReportContext) FormattedGeneratedAt() string {
	return c.GeneratedAt.UTC().Format("2006-01-02T15:04:05 MST")
}

// LatestPerModel picks the newest snapshot for each model, preserving the
// order in which models first appear in the history.
func LatestPerModel(history []model.Snapshot) []model.Snapshot {
	index := map[string]int{}
	var latest []model.Snapshot
	for _, s := range history {
		i, ok := index[s.Model]
		if !ok {
			index[s.Model] = len(latest)
			latest = append(latest, s)
			continue
		}
		if s.Timestamp.After(latest[i].Timestamp) {
			latest[i] = s
		}
	}
	return latest
}

func RenderReport(w io.Writer, c ReportContext) error {
	t, err := template.ParseFS(templatesFs, "templates/report.html.tpl")
	if err != nil {
		return err
	}
	return t.Execute(w, c)
}
