package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

func member(email string, groups []domain.GroupCode, submission, assessment domain.Grade) MemberRecord {
	return MemberRecord{
		Participant: &domain.Participant{Email: email, Groups: groups},
		Record: domain.RawGradeRecord{
			DisplayName: email,
			Submission:  submission,
			Assessment:  assessment,
		},
	}
}

func g1(group string) []domain.GroupCode {
	return []domain.GroupCode{{Set: "1", Group: group}}
}

func TestAggregate_GroupMeanSharedByAllMembers(t *testing.T) {
	// Peter 70.00 and Jane 74.00 in G1_1 reconcile to 72.00 for both.
	members := []MemberRecord{
		member("pete@x.com", g1("1"), domain.GradeOf(70), domain.GradeOf(18)),
		member("jane@x.com", g1("1"), domain.GradeOf(74), domain.GradeOf(12)),
	}

	out, err := Aggregate("1", members)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, domain.GradeOf(72), out[0].Submission)
	assert.Equal(t, domain.GradeOf(72), out[1].Submission)
}

func TestAggregate_AssessmentNeverAltered(t *testing.T) {
	members := []MemberRecord{
		member("pete@x.com", g1("1"), domain.GradeOf(70), domain.GradeOf(18)),
		member("jane@x.com", g1("1"), domain.GradeOf(74), domain.NullGrade()),
	}

	out, err := Aggregate("1", members)
	require.NoError(t, err)
	assert.Equal(t, domain.GradeOf(18), out[0].Assessment)
	assert.Equal(t, domain.NullGrade(), out[1].Assessment)
}

func TestAggregate_NullMembersExcludedFromMean(t *testing.T) {
	// A null submission grade must not contribute a zero to the mean.
	members := []MemberRecord{
		member("a@x.com", g1("1"), domain.GradeOf(70), domain.NullGrade()),
		member("b@x.com", g1("1"), domain.NullGrade(), domain.NullGrade()),
		member("c@x.com", g1("1"), domain.GradeOf(74), domain.NullGrade()),
	}

	out, err := Aggregate("1", members)
	require.NoError(t, err)
	for _, rec := range out {
		assert.Equal(t, domain.GradeOf(72), rec.Submission)
	}
}

func TestAggregate_AllNullGroupStaysNull(t *testing.T) {
	members := []MemberRecord{
		member("a@x.com", g1("1"), domain.NullGrade(), domain.NullGrade()),
		member("b@x.com", g1("1"), domain.NullGrade(), domain.NullGrade()),
	}

	out, err := Aggregate("1", members)
	require.NoError(t, err)
	for _, rec := range out {
		assert.Equal(t, domain.NullGrade(), rec.Submission)
	}
}

func TestAggregate_UngroupedKeepsOwnGrade(t *testing.T) {
	members := []MemberRecord{
		member("solo@x.com", nil, domain.GradeOf(65.5), domain.GradeOf(10)),
		member("other-set@x.com", []domain.GroupCode{{Set: "2", Group: "1"}}, domain.GradeOf(40), domain.NullGrade()),
		member("grouped@x.com", g1("1"), domain.GradeOf(80), domain.NullGrade()),
	}

	out, err := Aggregate("1", members)
	require.NoError(t, err)
	assert.Equal(t, domain.GradeOf(65.5), out[0].Submission)
	assert.Equal(t, domain.GradeOf(40), out[1].Submission)
	assert.Equal(t, domain.GradeOf(80), out[2].Submission)
}

func TestAggregate_RoundsFinalValueOnly(t *testing.T) {
	// 70 + 71 + 71 = 212; 212/3 = 70.666... -> 70.67. Rounding the
	// inputs first could not produce this value.
	members := []MemberRecord{
		member("a@x.com", g1("1"), domain.GradeOf(70), domain.NullGrade()),
		member("b@x.com", g1("1"), domain.GradeOf(71), domain.NullGrade()),
		member("c@x.com", g1("1"), domain.GradeOf(71), domain.NullGrade()),
	}

	out, err := Aggregate("1", members)
	require.NoError(t, err)
	assert.Equal(t, domain.GradeOf(70.67), out[0].Submission)
}

func TestAggregate_SeparateGroupsSeparateMeans(t *testing.T) {
	members := []MemberRecord{
		member("a@x.com", g1("1"), domain.GradeOf(70), domain.NullGrade()),
		member("b@x.com", g1("1"), domain.GradeOf(74), domain.NullGrade()),
		member("c@x.com", g1("2"), domain.GradeOf(50), domain.NullGrade()),
		member("d@x.com", g1("2"), domain.GradeOf(60), domain.NullGrade()),
	}

	out, err := Aggregate("1", members)
	require.NoError(t, err)
	assert.Equal(t, domain.GradeOf(72), out[0].Submission)
	assert.Equal(t, domain.GradeOf(72), out[1].Submission)
	assert.Equal(t, domain.GradeOf(55), out[2].Submission)
	assert.Equal(t, domain.GradeOf(55), out[3].Submission)
}

func TestAggregate_InconsistentGrouping(t *testing.T) {
	bad := MemberRecord{
		Participant: &domain.Participant{
			Email: "bad@x.com",
			Groups: []domain.GroupCode{
				{Set: "1", Group: "1"},
				{Set: "1", Group: "2"},
			},
		},
	}

	_, err := Aggregate("1", []MemberRecord{bad})
	require.Error(t, err)
	assert.True(t, grerrors.IsType(err, grerrors.ErrTypeInconsistentGrouping))
}

func TestInferSet(t *testing.T) {
	tests := []struct {
		name       string
		reportReps []string
		rosterSets []string
		want       string
		wantErr    bool
	}{
		{
			name:       "from report menu",
			reportReps: []string{"Group 1_1", "Group 1_2"},
			rosterSets: []string{"1", "2"},
			want:       "1",
		},
		{
			name:       "short code form",
			reportReps: []string{"G2_1", "G2_2"},
			rosterSets: []string{"1", "2"},
			want:       "2",
		},
		{
			name:       "report ambiguous, roster single",
			reportReps: []string{"Group 1_1", "Group 2_1"},
			rosterSets: []string{"3"},
			want:       "3",
		},
		{
			name:       "no signal",
			reportReps: nil,
			rosterSets: []string{"1", "2"},
			wantErr:    true,
		},
		{
			name:       "cohort-only menu falls back to roster",
			reportReps: []string{"A", "B"},
			rosterSets: []string{"1"},
			want:       "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferSet(tt.reportReps, tt.rosterSets)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, grerrors.IsType(err, grerrors.ErrTypeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
