package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/tsawler/manucheck"
)

type jsonReport struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Summary     Summary             `json:"summary"`
	Reports     []*manucheck.Report `json:"reports"`
}

// JSON renders reports as an indented JSON document.
func JSON(w io.Writer, reports []*manucheck.Report) error {
	if reports == nil {
		reports = []*manucheck.Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonReport{
		GeneratedAt: time.Now().UTC(),
		Summary:     Summarize(reports),
		Reports:     reports,
	})
}
