// Package roster builds the participant lookup used to reconcile
// workshop report rows against the course enrolment: participants
// keyed by normalized email, by ID number and by folded full name,
// each carrying its parsed submission-group codes.
package roster

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
	"github.com/tonechas/moodle-workshop-group-grades/pkg/contracts/domain"
)

// Row is one raw participant row as yielded by a roster provider
// (CSV or XLSX export of the course participant list).
type Row struct {
	FirstName string
	LastName  string
	// IDNumber is optional; empty when the course does not assign one.
	IDNumber string
	Email    string
	// Groups is the raw comma-separated group/label column.
	Groups string
}

// Index is the lookup over course participants. Participants keeps the
// roster's original order, which output records must follow.
type Index struct {
	participants []*domain.Participant
	byEmail      map[string]*domain.Participant
	byID         map[string]*domain.Participant
	byName       map[string][]*domain.Participant
}

var validate = validator.New()

// Build constructs the index from raw roster rows. It fails when two
// participants share a normalized email or an ID number, and when an
// email does not look like one; ambiguous identity must not be
// silently merged. All problems found are reported together.
func Build(rows []Row) (*Index, error) {
	idx := &Index{
		participants: make([]*domain.Participant, 0, len(rows)),
		byEmail:      make(map[string]*domain.Participant, len(rows)),
		byID:         make(map[string]*domain.Participant),
		byName:       make(map[string][]*domain.Participant, len(rows)),
	}

	var problems grerrors.Problems
	for i, row := range rows {
		email := NormalizeEmail(row.Email)
		if err := validate.Var(email, "required,email"); err != nil {
			problems.Add(grerrors.NewInvalidInputError(
				fmt.Sprintf("roster row %d: invalid email %q", i+1, row.Email), nil))
			continue
		}

		codes, labels := ParseGroupLabels(row.Groups)
		p := &domain.Participant{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			IDNumber:  row.IDNumber,
			Email:     email,
			Groups:    codes,
			Labels:    labels,
		}

		if _, exists := idx.byEmail[email]; exists {
			problems.Add(grerrors.NewDuplicateKeyError("email", email))
			continue
		}
		if p.IDNumber != "" {
			if _, exists := idx.byID[p.IDNumber]; exists {
				problems.Add(grerrors.NewDuplicateKeyError("id number", p.IDNumber))
				continue
			}
		}

		idx.participants = append(idx.participants, p)
		idx.byEmail[email] = p
		if p.IDNumber != "" {
			idx.byID[p.IDNumber] = p
		}
		name := NormalizeName(p.FullName())
		idx.byName[name] = append(idx.byName[name], p)
	}

	if err := problems.ErrOrNil(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Participants returns all participants in roster order.
func (idx *Index) Participants() []*domain.Participant {
	return idx.participants
}

// ByEmail looks a participant up by email; the key is normalized
// before lookup.
func (idx *Index) ByEmail(email string) (*domain.Participant, bool) {
	p, ok := idx.byEmail[NormalizeEmail(email)]
	return p, ok
}

// ByID looks a participant up by ID number.
func (idx *Index) ByID(id string) (*domain.Participant, bool) {
	p, ok := idx.byID[id]
	return p, ok
}

// MatchName returns every participant whose folded full name equals
// the folded form of name. More than one result means the name is
// ambiguous and must not be resolved by guessing.
func (idx *Index) MatchName(name string) []*domain.Participant {
	return idx.byName[NormalizeName(name)]
}

// Sets returns the distinct grouping sets that appear across all
// participants' group codes.
func (idx *Index) Sets() []string {
	seen := make(map[string]bool)
	var sets []string
	for _, p := range idx.participants {
		for _, g := range p.Groups {
			if !seen[g.Set] {
				seen[g.Set] = true
				sets = append(sets, g.Set)
			}
		}
	}
	return sets
}
