package domain

// RawGradeRecord is one student row extracted from the workshop grades
// report, before any group reconciliation.
type RawGradeRecord struct {
	// DisplayName is the participant identifier exactly as printed in
	// the report, usually "First Last".
	DisplayName string `json:"display_name"`
	// Email is set when the report exposes it next to the name;
	// matching prefers it over the display name.
	Email string `json:"email,omitempty"`
	// Submitted reports whether the row links to a submission.
	Submitted  bool  `json:"submitted"`
	Submission Grade `json:"submission"`
	Assessment Grade `json:"assessment"`
	// Row is the 1-based data row index in the report table, kept for
	// error reporting.
	Row int `json:"row"`
}

// AggregatedGradeRecord is one participant's grades after group
// reconciliation. Submission is the group's reconciled value (or the
// participant's own raw value when ungrouped); Assessment is always
// the participant's own raw value.
type AggregatedGradeRecord struct {
	Participant *Participant `json:"participant"`
	Submission  Grade        `json:"submission"`
	Assessment  Grade        `json:"assessment"`
}

// GradeRow is one line of the grade import file.
type GradeRow struct {
	Participant *Participant `json:"participant"`
	Submission  Grade        `json:"submission"`
	Assessment  Grade        `json:"assessment"`
	// Overall is Submission + Assessment when both are non-null,
	// otherwise null. Never coerced to zero.
	Overall Grade `json:"overall"`
	// Graded is false for roster participants with no report row;
	// their grade fields are all null.
	Graded bool `json:"graded"`
}
