package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade_Add(t *testing.T) {
	tests := []struct {
		name string
		a    Grade
		b    Grade
		want Grade
	}{
		{
			name: "both valid",
			a:    GradeOf(72.0),
			b:    GradeOf(15.5),
			want: GradeOf(87.5),
		},
		{
			name: "left null",
			a:    NullGrade(),
			b:    GradeOf(15.5),
			want: NullGrade(),
		},
		{
			name: "right null",
			a:    GradeOf(72.0),
			b:    NullGrade(),
			want: NullGrade(),
		},
		{
			name: "both null",
			a:    NullGrade(),
			b:    NullGrade(),
			want: NullGrade(),
		},
		{
			name: "zero is not null",
			a:    GradeOf(0),
			b:    GradeOf(0),
			want: GradeOf(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Add(tt.b))
		})
	}
}

func TestGrade_Round(t *testing.T) {
	assert.Equal(t, GradeOf(72.0), GradeOf(72.004999).Round())
	assert.Equal(t, GradeOf(72.01), GradeOf(72.006).Round())
	assert.Equal(t, NullGrade(), NullGrade().Round())
}

func TestGrade_String(t *testing.T) {
	assert.Equal(t, "13.40", GradeOf(13.4).String())
	assert.Equal(t, "-", NullGrade().String())
}

func TestParticipant_Identifier(t *testing.T) {
	withID := Participant{IDNumber: "300000", Email: "pete@x.com"}
	assert.Equal(t, "300000", withID.Identifier())

	withoutID := Participant{Email: "pete@x.com"}
	assert.Equal(t, "pete@x.com", withoutID.Identifier())
}

func TestParticipant_GroupInSet(t *testing.T) {
	p := Participant{Groups: []GroupCode{{Set: "1", Group: "2"}, {Set: "2", Group: "1"}}}

	g, ok := p.GroupInSet("1")
	assert.True(t, ok)
	assert.Equal(t, GroupCode{Set: "1", Group: "2"}, g)

	_, ok = p.GroupInSet("3")
	assert.False(t, ok)
}

func TestGroupCode_String(t *testing.T) {
	assert.Equal(t, "G1_2", GroupCode{Set: "1", Group: "2"}.String())
}
