package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalWarehouseVariants(t *testing.T) {
	cases := map[string]string{
		"Gudang A":               GroupGudangA,
		"gudang a":               GroupGudangA,
		"GD. A":                  GroupGudangA,
		"  Gudang   A  ":         GroupGudangA,
		"Gudang B":               GroupGudangBCD,
		"gudang c":               GroupGudangBCD,
		"BCD":                    GroupGudangBCD,
		"Gudang E (Bad Stock)":   GroupGudangBad,
		"Gudang E (bad stock)":   GroupGudangBad,
		"Gudang E - Bad Stock":   GroupGudangBad,
		"bad stock":              GroupGudangBad,
		"Gudang E":               GroupGudangBad,
		"Gudang Transit Cikarang": "Gudang Transit Cikarang",
		"":                       "",
		// "gudang e" prefix only counts on a word boundary
		"Gudang Ekspor":      "Gudang Ekspor",
		"Gudang Empat":       "Gudang Empat",
		"Gudang E (rusak)":   GroupGudangBad,
		"Gudang E - lama":    GroupGudangBad,
	}

	for input, want := range cases {
		assert.Equal(t, want, CanonicalWarehouse(input), "input %q", input)
	}
}

func TestCanonicalWarehouseIdempotent(t *testing.T) {
	inputs := []string{
		"Gudang A", "gd b", "GUDANG E (BAD STOCK)", "Gudang Transit  Cikarang", "x",
	}
	for _, input := range inputs {
		once := CanonicalWarehouse(input)
		assert.Equal(t, once, CanonicalWarehouse(once), "input %q", input)
	}
}

func TestExpandGroups(t *testing.T) {
	expanded := ExpandGroups([]string{GroupGudangBCD})
	assert.Equal(t, []string{"Gudang B", "Gudang C", "Gudang D"}, expanded)

	// Unknown labels survive expansion so exact-string matching still works
	expanded = ExpandGroups([]string{GroupGudangA, "Gudang Transit"})
	assert.Equal(t, []string{"Gudang A", "Gudang Transit"}, expanded)
}

func TestSameWarehouse(t *testing.T) {
	assert.True(t, SameWarehouse("gudang b", "Gudang D"))
	assert.True(t, SameWarehouse("Gudang E", "bad stock"))
	assert.False(t, SameWarehouse("Gudang A", "Gudang B"))
}

func TestGroupMembers(t *testing.T) {
	assert.Equal(t, []string{"Gudang B", "Gudang C", "Gudang D"}, GroupMembers("bcd"))
	assert.Nil(t, GroupMembers("does-not-exist"))
}
