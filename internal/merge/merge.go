package merge

import (
	"github.com/tonechas/moodle-workshop-group-grades/internal/roster"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// Result is the final outcome of a pipeline run.
type Result struct {
	// Rows holds one grade row per roster participant, in the
	// roster's original order.
	Rows []domain.GradeRow
	// Unmatched lists report rows that correspond to no roster
	// participant. They produce no grade row.
	Unmatched []domain.RawGradeRecord
	// Ungraded lists roster participants with no report row. Their
	// grade rows carry null fields.
	Ungraded []*domain.Participant
}

// Merge joins the aggregated records with the roster. The overall
// grade is submission + assessment when both are non-null; otherwise
// it stays null rather than being coerced to zero. Participants absent
// from the report get a row with null fields and are listed as
// ungraded; unmatched report rows are carried through untouched.
func Merge(idx *roster.Index, aggregated []domain.AggregatedGradeRecord, unmatched []domain.RawGradeRecord) Result {
	byParticipant := make(map[*domain.Participant]domain.AggregatedGradeRecord, len(aggregated))
	for _, rec := range aggregated {
		byParticipant[rec.Participant] = rec
	}

	result := Result{Unmatched: unmatched}
	for _, p := range idx.Participants() {
		rec, graded := byParticipant[p]
		row := domain.GradeRow{Participant: p, Graded: graded}
		if graded {
			row.Submission = rec.Submission
			row.Assessment = rec.Assessment
			row.Overall = rec.Submission.Add(rec.Assessment)
		} else {
			result.Ungraded = append(result.Ungraded, p)
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}
