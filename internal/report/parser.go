// Package report extracts per-student grade records from the HTML
// grades report exported by the LMS workshop activity. The markup is
// presentation-oriented and drifts between platform versions, so the
// grades table and its columns are located by header text rather than
// by position or CSS class.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// Report is the structured content of one workshop grades report.
type Report struct {
	// WorkshopTitle is taken from the page breadcrumb; empty when the
	// export has none. Informational only.
	WorkshopTitle string
	// GroupNames lists the entries of the report's group selection
	// menu, e.g. "Group 1_1". Used to infer the grouping set.
	GroupNames []string
	// Records holds one raw grade record per student row, in report
	// order.
	Records []domain.RawGradeRecord
}

// Parser walks the grades report markup.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a report parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// columnMap holds the resolved cell index of each column of interest.
// An index of -1 means the report does not carry that column.
type columnMap struct {
	name       int
	submission int // submission title column, optional
	subGrade   int
	assGrade   int
}

// Parse extracts the grades report from HTML markup. The grades table
// must be locatable; a missing or header-less table aborts immediately
// since no row extraction can be trusted. Row-level cell problems are
// collected and reported together.
func (p *Parser) Parse(r io.Reader) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, grerrors.NewMalformedReportError(0, "unparseable HTML document", err)
	}

	rep := &Report{
		WorkshopTitle: extractWorkshopTitle(doc),
		GroupNames:    extractGroupNames(doc),
	}

	table, header, cols, err := findGradesTable(doc)
	if err != nil {
		return nil, err
	}

	var problems grerrors.Problems
	row := 0
	headerNode := header.Nodes[0]
	headerCols := header.ChildrenFiltered("th, td").Length()
	tableRows(table).Each(func(_ int, tr *goquery.Selection) {
		if tr.Nodes[0] == headerNode {
			return
		}
		cells := tr.ChildrenFiltered("td, th")
		if cells.Length() < headerCols {
			// Per-peer continuation row of a rowspan block. Only the
			// first row of each student block carries the full column
			// set; continuation rows hold the remaining received/given
			// cells and would otherwise be misread as student rows.
			return
		}
		name := summaryText(cells.Eq(cols.name))
		if name == "" {
			// Filler row.
			return
		}
		row++

		rec := domain.RawGradeRecord{
			DisplayName: name,
			Email:       mailtoAddress(cells.Eq(cols.name)),
			Row:         row,
		}

		if cols.submission >= 0 && cols.submission < cells.Length() {
			cell := cells.Eq(cols.submission)
			rec.Submitted = cell.Find("a").Length() > 0
		}

		rec.Submission = parseGradeCell(cells, cols.subGrade, row, "submission", &problems)
		rec.Assessment = parseGradeCell(cells, cols.assGrade, row, "assessment", &problems)
		if !rec.Submitted {
			rec.Submitted = rec.Submission.Valid
		}
		rep.Records = append(rep.Records, rec)
	})

	if err := problems.ErrOrNil(); err != nil {
		return nil, err
	}

	p.logger.Debug("parsed grades report",
		slog.String("workshop", rep.WorkshopTitle),
		slog.Int("students", len(rep.Records)),
		slog.Int("groups", len(rep.GroupNames)))
	return rep, nil
}

// parseGradeCell extracts one numeric grade from the cell at index
// col, reporting malformed content against the given row.
func parseGradeCell(cells *goquery.Selection, col, row int, kind string, problems *grerrors.Problems) domain.Grade {
	if col < 0 || col >= cells.Length() {
		return domain.NullGrade()
	}
	grade, err := parseGrade(summaryText(cells.Eq(col)))
	if err != nil {
		problems.Add(grerrors.NewMalformedReportError(row,
			fmt.Sprintf("row %d: unexpected %s grade cell content", row, kind), err))
		return domain.NullGrade()
	}
	return grade
}

// findGradesTable locates the grades table by its header row: the
// table whose headers name a participant column, a grade for
// submission column and a grade for assessment column, in whatever
// order and wording the platform version uses.
func findGradesTable(doc *goquery.Document) (*goquery.Selection, *goquery.Selection, columnMap, error) {
	var (
		found  *goquery.Selection
		header *goquery.Selection
		cols   columnMap
	)

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		h := table.Find("thead tr").First()
		if h.Length() == 0 {
			h = tableRows(table).First()
		}
		if h.Length() == 0 {
			return true
		}
		c, ok := mapColumns(h)
		if !ok {
			return true
		}
		found = table
		header = h
		cols = c
		return false
	})

	if found == nil {
		return nil, nil, cols, grerrors.NewMalformedReportError(0,
			"could not locate the grades table by its header row", nil)
	}
	return found, header, cols, nil
}

// tableRows returns the table's own rows, not those of tables nested
// inside its cells. Grade cells can embed per-peer sub-tables whose
// rows must not be mistaken for student rows.
func tableRows(table *goquery.Selection) *goquery.Selection {
	rows := table.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")
	if rows.Length() == 0 {
		rows = table.ChildrenFiltered("tr")
	}
	return rows
}

// mapColumns resolves column roles from a header row. It reports ok
// only when the name, submission grade and assessment grade columns
// are all present.
func mapColumns(header *goquery.Selection) (columnMap, bool) {
	cols := columnMap{name: -1, submission: -1, subGrade: -1, assGrade: -1}

	header.ChildrenFiltered("th, td").Each(func(i int, cell *goquery.Selection) {
		text := strings.ToLower(summaryText(cell))
		switch {
		case strings.Contains(text, "grade") && strings.Contains(text, "submission"):
			cols.subGrade = i
		case strings.Contains(text, "grade") && (strings.Contains(text, "assessment") || strings.Contains(text, "grading")):
			cols.assGrade = i
		case strings.Contains(text, "first name") || strings.Contains(text, "participant") ||
			(strings.Contains(text, "name") && !strings.Contains(text, "grade")):
			cols.name = i
		case text == "submission" || strings.Contains(text, "submission title"):
			cols.submission = i
		}
	})

	return cols, cols.name >= 0 && cols.subGrade >= 0 && cols.assGrade >= 0
}

// extractWorkshopTitle returns the last breadcrumb entry, which the
// platform sets to the workshop name.
func extractWorkshopTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("ol.breadcrumb li").Last().Text())
}

// extractGroupNames collects the entries of the group selection menu,
// skipping the "all participants" default.
func extractGroupNames(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var names []string
	doc.Find("select[name=group] option").Each(func(_ int, opt *goquery.Selection) {
		if val, _ := opt.Attr("value"); val == "0" {
			return
		}
		name := strings.TrimSpace(opt.Text())
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}

// mailtoAddress returns the address of the first mailto link inside
// the cell, when the export includes one next to the student name.
func mailtoAddress(cell *goquery.Selection) string {
	href, ok := cell.Find(`a[href^="mailto:"]`).Attr("href")
	if !ok {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(href, "mailto:"))
}
