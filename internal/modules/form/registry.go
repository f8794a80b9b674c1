package form

import (
	"fmt"
	"strings"

	"github.com/fieldpost/core/internal/pkg/sanitize"
)

// Role slot names in canonical order. Each maps at most one field type to a
// single addressing slot; everything else is "extra".
const (
	RoleName    = "name"
	RoleEmail   = "email"
	RoleURL     = "url"
	RoleSubject = "subject"
	RoleText    = "textarea"
)

var roleTypes = map[string]string{
	TypeName:     RoleName,
	TypeEmail:    RoleEmail,
	TypeURL:      RoleURL,
	TypeSubject:  RoleSubject,
	TypeTextarea: RoleText,
}

// FieldIDs is the addressing split produced by BuildFieldIDs: each populated
// role slot holds one field index, the rest keep their definition order in
// Extra. All is the full ordered index list.
type FieldIDs struct {
	Roles map[string]int
	Extra []int
	All   []int
}

// RoleField returns the field occupying a role slot, or nil.
func (ids FieldIDs) RoleField(fields []*Field, role string) *Field {
	idx, ok := ids.Roles[role]
	if !ok {
		return nil
	}
	return fields[idx]
}

// BuildFieldIDs walks the fields once in definition order. The first field of
// each well-known type wins its role slot; later fields of the same type and
// all custom types append to Extra in original relative order.
func BuildFieldIDs(fields []*Field) FieldIDs {
	ids := FieldIDs{
		Roles: make(map[string]int, 5),
		All:   make([]int, 0, len(fields)),
	}
	for i, f := range fields {
		ids.All = append(ids.All, i)
		role, known := roleTypes[f.Type()]
		if known {
			if _, taken := ids.Roles[role]; !taken {
				ids.Roles[role] = i
				continue
			}
		}
		ids.Extra = append(ids.Extra, i)
	}
	return ids
}

// Pair is one ordered label/value entry for composition and persistence.
type Pair struct {
	Key   string
	Value string
}

// ExtraValues builds the prefixed label/value pairs for the extra fields.
// The running counter starts after the populated role slots, so the key for a
// given extra field is a function of (role-count, order). The identical
// formula runs at read time when a persisted record is unpacked; changing it
// breaks lookups against existing data.
func ExtraValues(fields []*Field, ids FieldIDs) []Pair {
	pairs := make([]Pair, 0, len(ids.Extra))
	i := len(ids.Roles) + 1
	for _, idx := range ids.Extra {
		f := fields[idx]
		pairs = append(pairs, Pair{
			Key:   fmt.Sprintf("%d_%s", i, sanitize.StripTags(f.Label())),
			Value: strings.TrimSpace(sanitize.StripTags(f.Value.String())),
		})
		i++
	}
	return pairs
}

// ExtraKeys re-derives the prefixed keys for the extra fields without values,
// for reading a persisted extra-field map back in definition order.
func ExtraKeys(fields []*Field, ids FieldIDs) []string {
	keys := make([]string, 0, len(ids.Extra))
	i := len(ids.Roles) + 1
	for _, idx := range ids.Extra {
		keys = append(keys, fmt.Sprintf("%d_%s", i, sanitize.StripTags(fields[idx].Label())))
		i++
	}
	return keys
}

// AllValues builds prefixed label/value pairs for every field, counting from
// one in definition order. Used for the searchable dump appended to the
// persisted record body.
func AllValues(fields []*Field) []Pair {
	pairs := make([]Pair, 0, len(fields))
	for i, f := range fields {
		pairs = append(pairs, Pair{
			Key:   fmt.Sprintf("%d_%s", i+1, sanitize.StripTags(f.Label())),
			Value: strings.TrimSpace(sanitize.StripTags(f.Value.String())),
		})
	}
	return pairs
}
