// Package filter builds parameterized restrictions for vault queries from
// detected entity-name variants.
package filter

import (
	"VaultMind/backend/go/internal/analysis/schema"
	"fmt"
	"strings"
)

// BuildEquipmentFilter turns a set of equipment-name variants (alternate
// spellings, OCR artifacts) into a boolean restriction matching any variant
// case-insensitively, substring-anywhere, against the equipment name or the
// manufacturer field.
//
// Each variant claims two consecutive positional parameter slots starting at
// paramOffset, so the fragment composes with a WHERE clause the caller is
// already building: the caller appends Condition to its SQL text and Params
// to its bound arguments, preserving order. An empty variant set yields the
// identity fragment, which imposes no restriction.
func BuildEquipmentFilter(variants []string, paramOffset int) schema.FilterFragment {
	if len(variants) == 0 {
		return schema.FilterFragment{}
	}

	disjuncts := make([]string, 0, len(variants))
	params := make([]string, 0, 2*len(variants))
	for i, variant := range variants {
		nameParam := paramOffset + 2*i
		makerParam := nameParam + 1
		disjuncts = append(disjuncts, fmt.Sprintf("(equipment_name ILIKE $%d OR manufacturer ILIKE $%d)", nameParam, makerParam))

		wildcard := "%" + variant + "%"
		params = append(params, wildcard, wildcard)
	}

	return schema.FilterFragment{
		Condition: " AND (" + strings.Join(disjuncts, " OR ") + ")",
		Params:    params,
	}
}
