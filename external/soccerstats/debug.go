package soccerstats

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

const (
	debugMaxCells    = 5
	debugHTMLPreview = 100
)

type DebugCell struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	HTML  string `json:"html,omitempty"`
}

// DebugRow is a raw view of one fixture-looking table row, used to check the page
// layout when extraction starts returning nothing.
type DebugRow struct {
	Number int         `json:"number"`
	Cells  []DebugCell `json:"cells"`
}

// ExtractDebugRows returns up to limit rows whose first cell looks like a fixture date.
// Each row carries the first cell's text plus up to four following cells with a
// short markup preview.
func ExtractDebugRows(html []byte, limit int) ([]DebugRow, error) {
	if limit <= 0 {
		limit = 5
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, crerr.Wrap(err, "parse debug page")
	}

	rows := make([]DebugRow, 0, limit)
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		first := cellText(cells, 0)
		if !fixtureDatePattern.MatchString(first) {
			return true
		}

		item := DebugRow{
			Number: len(rows) + 1,
			Cells:  []DebugCell{{Index: 0, Text: first}},
		}
		for i := 1; i < min(cells.Length(), debugMaxCells); i++ {
			markup, _ := cells.Eq(i).Html()
			item.Cells = append(item.Cells, DebugCell{
				Index: i,
				Text:  cellText(cells, i),
				HTML:  truncateRunes(markup, debugHTMLPreview),
			})
		}
		rows = append(rows, item)
		return len(rows) < limit
	})
	return rows, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
