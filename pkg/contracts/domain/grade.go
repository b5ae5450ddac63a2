package domain

import (
	"fmt"
	"math"
)

// Grade is a nullable decimal grade. The zero value is the null grade,
// which the workshop report renders as a dash. Null and zero carry
// different weight during aggregation: a null grade never contributes
// to a group mean.
type Grade struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// GradeOf returns a non-null grade with the given value.
func GradeOf(v float64) Grade {
	return Grade{Value: v, Valid: true}
}

// NullGrade returns the null grade.
func NullGrade() Grade {
	return Grade{}
}

// Add returns the sum of two grades, or the null grade if either
// operand is null.
func (g Grade) Add(other Grade) Grade {
	if !g.Valid || !other.Valid {
		return NullGrade()
	}
	return GradeOf(g.Value + other.Value)
}

// Round returns the grade rounded to two decimal places. Null grades
// are returned unchanged.
func (g Grade) Round() Grade {
	if !g.Valid {
		return g
	}
	return GradeOf(math.Round(g.Value*100) / 100)
}

// String renders the grade with two decimal places, or a dash when null.
func (g Grade) String() string {
	if !g.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", g.Value)
}
