package exporter

import (
	"fmt"

	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// formatGrade formats a grade for CSV output with exactly 2 decimal
// places, so 13.4 appears as 13.40. The null grade becomes an empty
// field, never "0.00".
func formatGrade(g domain.Grade) string {
	if !g.Valid {
		return ""
	}
	return fmt.Sprintf("%.2f", g.Value)
}
