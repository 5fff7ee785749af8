package table

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceRun = regexp.MustCompile(`\s+`)

// ReadHTML parses the index-th <table> of an HTML document, such as a stats
// page saved to disk. The header is the last row of <thead> (earlier rows
// are grouping headers), or the first row when there is no <thead>. Body
// rows classed "thead" or "over_header", and rows that repeat the header,
// are skipped.
func ReadHTML(r io.Reader, index int) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if index < 0 || index >= tables.Length() {
		return nil, fmt.Errorf("table index %d out of range: document has %d tables", index, tables.Length())
	}
	sel := tables.Eq(index)

	var headerRow *goquery.Selection
	bodyRows := sel.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(sel)
	})
	if head := sel.ChildrenFiltered("thead").Find("tr"); head.Length() > 0 {
		headerRow = head.Last()
		bodyRows = bodyRows.Not("thead tr")
	} else {
		headerRow = bodyRows.First()
		bodyRows = bodyRows.Slice(1, bodyRows.Length())
	}
	if headerRow.Length() == 0 {
		return nil, fmt.Errorf("table %d has no rows", index)
	}

	header := cellTexts(headerRow)
	headerKey := strings.Join(header, "\x00")

	var rows [][]string
	bodyRows.Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") || tr.HasClass("over_header") {
			return
		}
		cells := cellTexts(tr)
		if len(cells) == 0 || strings.Join(cells, "\x00") == headerKey {
			return
		}
		rows = append(rows, cells)
	})

	return New(header, rows), nil
}

func cellTexts(tr *goquery.Selection) []string {
	var cells []string
	tr.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(spaceRun.ReplaceAllString(cell.Text(), " ")))
	})
	return cells
}
