package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// placeholders are the cell texts the platform prints for an ungraded
// item. These become the null grade, never zero.
var placeholders = map[string]bool{
	"":  true,
	"-": true,
	"–": true,
	"—": true,
}

// parseGrade converts a grade cell's summary text to a Grade. The
// platform localizes the decimal separator, so both "81.3" and "70,4"
// parse. Placeholder text yields the null grade; anything else
// non-numeric is an error.
func parseGrade(text string) (domain.Grade, error) {
	t := strings.TrimSpace(text)
	if placeholders[t] {
		return domain.NullGrade(), nil
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		v, err = strconv.ParseFloat(strings.Replace(t, ",", ".", 1), 64)
		if err != nil {
			return domain.NullGrade(), fmt.Errorf("not a grade: %q", text)
		}
	}
	return domain.GradeOf(v), nil
}

// summaryText returns the cell's own text with any nested tables
// excluded. Grade cells can embed per-peer breakdown sub-tables; only
// the row's summary value is wanted, peer-level detail is out of scope.
func summaryText(cell *goquery.Selection) string {
	var b strings.Builder
	for _, node := range cell.Nodes {
		writeTextSkippingTables(node, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeTextSkippingTables(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "table" {
			continue
		}
		writeTextSkippingTables(c, b)
	}
}
