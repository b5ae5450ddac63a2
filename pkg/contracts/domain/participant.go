package domain

import (
	"fmt"
	"strings"
)

// GroupCode identifies a submission group within a grouping set.
// The platform encodes it as "G<set>_<group>", e.g. "G1_2" is group 2
// of set 1. A participant belongs to at most one group per set but may
// belong to groups in several distinct sets.
type GroupCode struct {
	Set   string `json:"set"`
	Group string `json:"group"`
}

// String renders the code in its platform form.
func (c GroupCode) String() string {
	return fmt.Sprintf("G%s_%s", c.Set, c.Group)
}

// Participant represents one enrolled user from the course roster.
type Participant struct {
	FirstName string      `json:"first_name" validate:"required"`
	LastName  string      `json:"last_name" validate:"required"`
	IDNumber  string      `json:"id_number,omitempty"`
	Email     string      `json:"email" validate:"required,email"`
	Groups    []GroupCode `json:"groups,omitempty"`
	// Labels holds roster tokens that are not group codes (cohort tags
	// such as "A" or "B"). Display metadata only; aggregation ignores them.
	Labels []string `json:"labels,omitempty"`
}

// FullName returns the participant's name as the report prints it.
func (p *Participant) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// GroupInSet returns the participant's group for the given set, if any.
func (p *Participant) GroupInSet(set string) (GroupCode, bool) {
	for _, g := range p.Groups {
		if g.Set == set {
			return g, true
		}
	}
	return GroupCode{}, false
}

// Identifier returns the key used in the grade import file: the ID
// number when the roster provides one, otherwise the email address.
func (p *Participant) Identifier() string {
	if p.IDNumber != "" {
		return p.IDNumber
	}
	return p.Email
}
