package filter

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestBuildEquipmentFilterEmptyVariants(t *testing.T) {
	for _, offset := range []int{0, 1, 4, 17} {
		fragment := BuildEquipmentFilter(nil, offset)
		if fragment.Condition != "" {
			t.Errorf("Offset %d: expected empty condition, got %q", offset, fragment.Condition)
		}
		if len(fragment.Params) != 0 {
			t.Errorf("Offset %d: expected no params, got %v", offset, fragment.Params)
		}
	}
}

func TestBuildEquipmentFilterVariantPairs(t *testing.T) {
	fragment := BuildEquipmentFilter([]string{"razon+", "rason"}, 4)

	wantParams := []string{"%razon+%", "%razon+%", "%rason%", "%rason%"}
	if !reflect.DeepEqual(fragment.Params, wantParams) {
		t.Errorf("Expected params %v, got %v", wantParams, fragment.Params)
	}

	// Placeholders 4 through 7 must all be referenced, and nothing outside
	// that range.
	for n := 4; n <= 7; n++ {
		if !strings.Contains(fragment.Condition, fmt.Sprintf("$%d", n)) {
			t.Errorf("Condition should reference placeholder $%d: %q", n, fragment.Condition)
		}
	}
	for _, n := range []int{1, 2, 3, 8} {
		if strings.Contains(fragment.Condition, fmt.Sprintf("$%d", n)) {
			t.Errorf("Condition should not reference placeholder $%d: %q", n, fragment.Condition)
		}
	}
}

func TestBuildEquipmentFilterComposable(t *testing.T) {
	fragment := BuildEquipmentFilter([]string{"KSB Etanorm"}, 3)

	if !strings.HasPrefix(fragment.Condition, " AND (") {
		t.Errorf("Condition must be appendable to an existing WHERE clause, got %q", fragment.Condition)
	}
	if len(fragment.Params) != 2 {
		t.Fatalf("Expected 2 params per variant, got %d", len(fragment.Params))
	}

	// Placeholder count must equal the parameter count.
	if got := strings.Count(fragment.Condition, "$"); got != len(fragment.Params) {
		t.Errorf("Condition references %d placeholders for %d params", got, len(fragment.Params))
	}

	// The variant value itself is never inlined into the SQL text.
	if strings.Contains(fragment.Condition, "KSB") {
		t.Errorf("Variant value leaked into condition text: %q", fragment.Condition)
	}
}

func TestBuildEquipmentFilterParamOrderMatchesNumbering(t *testing.T) {
	variants := []string{"alpha", "beta", "gamma"}
	fragment := BuildEquipmentFilter(variants, 10)

	if len(fragment.Params) != 2*len(variants) {
		t.Fatalf("Expected %d params, got %d", 2*len(variants), len(fragment.Params))
	}
	for i, variant := range variants {
		want := "%" + variant + "%"
		if fragment.Params[2*i] != want || fragment.Params[2*i+1] != want {
			t.Errorf("Variant %d params out of order: %v", i, fragment.Params)
		}
	}
}
