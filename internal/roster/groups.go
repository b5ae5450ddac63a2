package roster

import (
	"regexp"
	"strings"

	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// groupCodeRe matches submission-group codes of the form G<set>_<group>,
// e.g. "G1_2". Anything else in the roster's Groups column is a plain
// cohort label ("A", "B", ...) and is irrelevant to aggregation.
var groupCodeRe = regexp.MustCompile(`^G(\d+)_(\w+)$`)

// ParseGroupLabels splits a raw comma-separated roster Groups value
// into structured group codes and leftover cohort labels. Tokens are
// trimmed; empty tokens are dropped.
func ParseGroupLabels(raw string) (codes []domain.GroupCode, labels []string) {
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if m := groupCodeRe.FindStringSubmatch(token); m != nil {
			codes = append(codes, domain.GroupCode{Set: m[1], Group: m[2]})
		} else {
			labels = append(labels, token)
		}
	}
	return codes, labels
}
