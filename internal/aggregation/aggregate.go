// Package aggregation reconciles individually-reported submission
// grades into a single authoritative grade shared by every member of
// the same submission group. The report lists submission grades per
// student row even though a group submission is graded once; small
// discrepancies between rows (rounding, re-grading lag) are reconciled
// by averaging, since no single row is authoritative.
package aggregation

import (
	"fmt"
	"regexp"

	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// MemberRecord pairs a report row with its resolved roster participant.
type MemberRecord struct {
	Participant *domain.Participant
	Record      domain.RawGradeRecord
}

// Aggregate partitions the matched records by (set, group) for the
// given grouping set and computes each partition's reconciled
// submission grade: the arithmetic mean of the partition's non-null
// submission grades, rounded to two decimals. The mean is computed
// over the unrounded inputs and only the final value is rounded, so
// results do not depend on intermediate precision. Every member of a
// partition receives the identical reconciled value; a partition whose
// members are all ungraded reconciles to null. A participant with no
// group in the set keeps their own raw submission grade. Assessment
// grades are never altered.
func Aggregate(set string, members []MemberRecord) ([]domain.AggregatedGradeRecord, error) {
	if err := validateGrouping(members); err != nil {
		return nil, err
	}

	// Two-level partition: members with a group in the set, keyed by
	// the full code; everyone else is a singleton.
	partitions := make(map[domain.GroupCode][]int)
	for i, m := range members {
		if code, ok := m.Participant.GroupInSet(set); ok {
			partitions[code] = append(partitions[code], i)
		}
	}

	reconciled := make(map[domain.GroupCode]domain.Grade, len(partitions))
	for code, idxs := range partitions {
		var sum float64
		var graded int
		for _, i := range idxs {
			if g := members[i].Record.Submission; g.Valid {
				sum += g.Value
				graded++
			}
		}
		if graded == 0 {
			reconciled[code] = domain.NullGrade()
			continue
		}
		reconciled[code] = domain.GradeOf(sum / float64(graded)).Round()
	}

	out := make([]domain.AggregatedGradeRecord, 0, len(members))
	for _, m := range members {
		rec := domain.AggregatedGradeRecord{
			Participant: m.Participant,
			Submission:  m.Record.Submission,
			Assessment:  m.Record.Assessment,
		}
		if code, ok := m.Participant.GroupInSet(set); ok {
			rec.Submission = reconciled[code]
		}
		out = append(out, rec)
	}
	return out, nil
}

// validateGrouping defends against malformed roster group data: a
// participant listed in two groups of the same set would make the
// reconciled grade depend on iteration order. The inverse corruption,
// one group code naming two sets, cannot arise here: the set is part
// of the parsed GroupCode value, so equal codes agree on their set by
// construction.
func validateGrouping(members []MemberRecord) error {
	for _, m := range members {
		bySet := make(map[string]domain.GroupCode, len(m.Participant.Groups))
		for _, code := range m.Participant.Groups {
			if prev, dup := bySet[code.Set]; dup && prev != code {
				return grerrors.NewInconsistentGroupingError(code.String(), []string{code.Set}).
					WithContext("participant", m.Participant.Email).
					WithContext("conflicting", prev.String())
			}
			bySet[code.Set] = code
		}
	}
	return nil
}

// InferSet decides which grouping set reconciliation runs over when
// configuration does not pin one: the set named by the report's group
// menu if it names exactly one, otherwise the roster's only set.
func InferSet(reportGroups []string, rosterSets []string) (string, error) {
	seen := make(map[string]bool)
	var fromReport []string
	for _, name := range reportGroups {
		if set, ok := setOfGroupName(name); ok && !seen[set] {
			seen[set] = true
			fromReport = append(fromReport, set)
		}
	}
	if len(fromReport) == 1 {
		return fromReport[0], nil
	}
	if len(rosterSets) == 1 {
		return rosterSets[0], nil
	}
	return "", grerrors.NewInvalidInputError(
		fmt.Sprintf("cannot infer the grouping set (report names %d, roster has %d); configure one explicitly",
			len(fromReport), len(rosterSets)), nil)
}

// setOfGroupName extracts the set identifier from a group menu entry
// such as "Group 1_2" or "G1_2".
func setOfGroupName(name string) (string, bool) {
	m := groupNameRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// groupNameRe matches the group menu wording across platform versions.
var groupNameRe = regexp.MustCompile(`^(?:G|Group\s*)(\d+)_`)
