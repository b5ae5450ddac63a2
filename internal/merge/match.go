// Package merge joins report rows to roster participants and produces
// the ordered grade rows of the import file.
package merge

import (
	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
	"github.com/tonechas/moodle-workshop-group-grades/internal/roster"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// MatchKind tags the outcome of resolving one report row.
type MatchKind int

const (
	// MatchUnmatched means no roster participant corresponds to the row.
	MatchUnmatched MatchKind = iota
	// MatchMatched means exactly one participant corresponds to the row.
	MatchMatched
	// MatchAmbiguous means the row's display name is shared by several
	// participants and must not be resolved by guessing.
	MatchAmbiguous
)

// MatchResult is the tagged outcome of resolving a report row against
// the roster. Unmatched is a normal partial-data state, not an error.
type MatchResult struct {
	Kind        MatchKind
	Record      domain.RawGradeRecord
	Participant *domain.Participant   // set when Kind == MatchMatched
	Candidates  []*domain.Participant // set when Kind == MatchAmbiguous
}

// ResolveRecord matches one report row to the roster. Email wins when
// the report exposes one (normalized, unambiguous by construction);
// otherwise the display name is compared case- and accent-insensitively
// against roster full names.
func ResolveRecord(idx *roster.Index, rec domain.RawGradeRecord) MatchResult {
	if rec.Email != "" {
		if p, ok := idx.ByEmail(rec.Email); ok {
			return MatchResult{Kind: MatchMatched, Record: rec, Participant: p}
		}
		return MatchResult{Kind: MatchUnmatched, Record: rec}
	}

	switch candidates := idx.MatchName(rec.DisplayName); len(candidates) {
	case 0:
		return MatchResult{Kind: MatchUnmatched, Record: rec}
	case 1:
		return MatchResult{Kind: MatchMatched, Record: rec, Participant: candidates[0]}
	default:
		return MatchResult{Kind: MatchAmbiguous, Record: rec, Candidates: candidates}
	}
}

// Resolve matches every report row. Matched rows come back paired with
// their participant, unmatched rows are surfaced as a distinct result
// set, and ambiguous names are collected into a single fatal error so
// one run reports them all.
func Resolve(idx *roster.Index, records []domain.RawGradeRecord) (matched []MatchResult, unmatched []domain.RawGradeRecord, err error) {
	var problems grerrors.Problems
	for _, rec := range records {
		res := ResolveRecord(idx, rec)
		switch res.Kind {
		case MatchMatched:
			matched = append(matched, res)
		case MatchUnmatched:
			unmatched = append(unmatched, rec)
		case MatchAmbiguous:
			names := make([]string, len(res.Candidates))
			for i, c := range res.Candidates {
				names[i] = c.Email
			}
			problems.Add(grerrors.NewAmbiguousMatchError(rec.DisplayName, names))
		}
	}
	if err := problems.ErrOrNil(); err != nil {
		return nil, nil, err
	}
	return matched, unmatched, nil
}
