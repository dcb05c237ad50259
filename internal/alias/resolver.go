// Package alias translates user-supplied degree and role identifiers —
// numeric ids, slugs, localized or historical names — into the canonical
// values the rest of the system works with.
//
// The resolver is an immutable lookup structure built once at startup from
// the degree catalog; resolution itself does no I/O.
package alias

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
)

// degreeAliases maps each canonical degree slug to the alias strings it
// accepts, historical and localized spellings included. Aliases are matched
// after normalization, so diacritic and case variants need not be listed.
var degreeAliases = map[string][]string{
	"college-1ac": {
		"1ac", "1apic",
		"1ère année collège", "première année collège", "college 1",
	},
	"college-2ac": {
		"2ac", "2apic",
		"2ème année collège", "deuxième année collège", "college 2",
	},
	"college-3ac": {
		"3ac", "3apic", "3ème", "3eme",
		"3ème année collège", "troisième année collège", "college 3",
	},
	"lycee-tc": {
		"tc", "tronc commun", "tronc-commun", "seconde",
	},
	"lycee-1bac": {
		"1bac", "bac1", "1ère bac", "première bac", "1ère année bac",
	},
}

// roleAliases maps localized role synonyms to the four canonical roles.
var roleAliases = map[string]string{
	"élève":          model.RoleStudent,
	"étudiant":       model.RoleStudent,
	"student":        model.RoleStudent,
	"enseignant":     model.RoleTeacher,
	"professeur":     model.RoleTeacher,
	"prof":           model.RoleTeacher,
	"teacher":        model.RoleTeacher,
	"parent":         model.RoleParent,
	"tuteur":         model.RoleParent,
	"parent d'élève": model.RoleParent,
	"admin":          model.RoleAdmin,
	"administrateur": model.RoleAdmin,
	"administration": model.RoleAdmin,
	"direction":      model.RoleAdmin,
}

// Resolver resolves degree aliases and localized role names.
type Resolver struct {
	degreeByAlias map[string]uint
	roleByAlias   map[string]string
}

// NewResolver builds the resolver from the canonical degree rows. Each
// degree's slug and display name are registered alongside its alias set.
func NewResolver(degrees []model.Degree) *Resolver {
	r := &Resolver{
		degreeByAlias: make(map[string]uint),
		roleByAlias:   make(map[string]string, len(roleAliases)),
	}

	for i := range degrees {
		d := &degrees[i]
		r.degreeByAlias[Normalize(d.Slug)] = d.ID
		r.degreeByAlias[Normalize(d.Name)] = d.ID
		for _, a := range degreeAliases[d.Slug] {
			r.degreeByAlias[Normalize(a)] = d.ID
		}
	}

	for a, canonical := range roleAliases {
		r.roleByAlias[Normalize(a)] = canonical
	}

	return r
}

// ResolveDegree maps a slug or localized alias to a canonical degree id.
// Returns ok=false when nothing matches; the caller is responsible for
// turning that into a validation error. Numeric input is not handled here:
// services check numeric ids against the catalog directly.
func (r *Resolver) ResolveDegree(input string) (uint, bool) {
	id, ok := r.degreeByAlias[Normalize(input)]
	return id, ok
}

// ResolveRole maps a localized role name to one of the four canonical
// roles. Unrecognized input comes back lower-cased, never as an error; the
// caller rejects it if it is not canonical.
func (r *Resolver) ResolveRole(input string) string {
	n := Normalize(input)
	if canonical, ok := r.roleByAlias[n]; ok {
		return canonical
	}
	return n
}

// IsCanonicalRole reports whether s is one of the four canonical roles.
func IsCanonicalRole(s string) bool {
	switch s {
	case model.RoleStudent, model.RoleTeacher, model.RoleParent, model.RoleAdmin:
		return true
	}
	return false
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize case-folds, strips diacritics and control characters, and
// collapses internal whitespace: "2ème  Année\tCollège" → "2eme annee college".
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s // keep the raw string if decomposition fails
	}
	out = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, out)
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}
