package model

import "strings"

// Warehouse access-group labels. These are the canonical forms every
// warehouse comparison in the system must use — access control and inbox
// filtering compare canonical labels, never the raw string stored on a
// record.
const (
	GroupGudangA   = "Gudang A"
	GroupGudangBCD = "Gudang BCD"
	GroupGudangBad = "Gudang E (Bad Stock)"
)

// groupMembers maps each access group to the physical warehouse codes it
// covers.
var groupMembers = map[string][]string{
	GroupGudangA:   {"Gudang A"},
	GroupGudangBCD: {"Gudang B", "Gudang C", "Gudang D"},
	GroupGudangBad: {"Gudang E (Bad Stock)"},
}

// variantTable maps known historic and free-text spellings to their canonical
// group. Keys are normalized (lowercased, collapsed whitespace) before lookup.
var variantTable = map[string]string{
	"gudang a":   GroupGudangA,
	"gd a":       GroupGudangA,
	"gd. a":      GroupGudangA,
	"a":          GroupGudangA,
	"gudang bcd": GroupGudangBCD,
	"bcd":        GroupGudangBCD,
	"gudang b":   GroupGudangBCD,
	"gudang c":   GroupGudangBCD,
	"gudang d":   GroupGudangBCD,
	"gd b":       GroupGudangBCD,
	"gd c":       GroupGudangBCD,
	"gd d":       GroupGudangBCD,
	"b":          GroupGudangBCD,
	"c":          GroupGudangBCD,
	"d":          GroupGudangBCD,
	"bad stock":  GroupGudangBad,
	"gudang e":   GroupGudangBad,
	"e":          GroupGudangBad,
}

// WarehouseGroups returns the three access-group labels in display order.
func WarehouseGroups() []string {
	return []string{GroupGudangA, GroupGudangBCD, GroupGudangBad}
}

// GroupMembers returns the physical warehouse codes belonging to a group.
// Unknown groups yield nil.
func GroupMembers(group string) []string {
	return groupMembers[CanonicalWarehouse(group)]
}

// ExpandGroups flattens a set of access-group keys into the physical
// warehouse codes they cover. Unknown keys are kept as-is so a record tagged
// with an unmapped label is still matchable by exact string.
func ExpandGroups(groups []string) []string {
	var out []string
	for _, g := range groups {
		members := groupMembers[CanonicalWarehouse(g)]
		if members == nil {
			out = append(out, g)
			continue
		}
		out = append(out, members...)
	}
	return out
}

// CanonicalWarehouse maps a free-text warehouse label onto one of the three
// access-group labels. Idempotent: canonical labels map to themselves.
// Labels that match no known variant pass through whitespace-normalized, so
// repeated application is still stable.
func CanonicalWarehouse(label string) string {
	trimmed := strings.Join(strings.Fields(label), " ")
	if trimmed == "" {
		return trimmed
	}

	lower := strings.ToLower(trimmed)
	if canonical, ok := variantTable[lower]; ok {
		return canonical
	}
	// Historic exports wrote the bad-stock warehouse with varying suffixes
	// ("Gudang E (bad stock)", "Gudang E - Bad Stock").
	if strings.Contains(lower, "bad stock") {
		return GroupGudangBad
	}
	if rest, ok := strings.CutPrefix(lower, "gudang e"); ok {
		// Word boundary only: "Gudang Ekspor" is a different warehouse
		if rest == "" || rest[0] == ' ' || rest[0] == '(' || rest[0] == '-' {
			return GroupGudangBad
		}
	}
	return trimmed
}

// SameWarehouse reports whether two labels refer to the same access group.
func SameWarehouse(a, b string) bool {
	return CanonicalWarehouse(a) == CanonicalWarehouse(b)
}
