package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityUnmarshalLenient(t *testing.T) {
	cases := map[string]Quantity{
		`7`:       7,
		`"12"`:    12,
		`" 3 "`:   3,
		`7.9`:     7,
		`""`:      0,
		`null`:    0,
		`"abc"`:   0,
		`[1,2]`:   0,
		`{"a":1}`: 0,
	}

	for input, want := range cases {
		var q Quantity
		err := json.Unmarshal([]byte(input), &q)
		require.NoError(t, err, "input %s", input)
		assert.Equal(t, want, q, "input %s", input)
	}
}

func TestQuantityUnmarshalInsideRecord(t *testing.T) {
	// A garbage counter must never fail the whole document
	payload := []byte(`{"code":"A1","name":"Item","gudang":"Gudang A","large":"4","medium":null,"small":"x"}`)

	var rec InboundRecord
	require.NoError(t, json.Unmarshal(payload, &rec))
	assert.Equal(t, Quantity(4), rec.Large)
	assert.Equal(t, Quantity(0), rec.Medium)
	assert.Equal(t, Quantity(0), rec.Small)
}

func TestQuantityMarshal(t *testing.T) {
	data, err := json.Marshal(Quantity(-3))
	require.NoError(t, err)
	assert.Equal(t, "-3", string(data))
}

func TestSizeQtyAddSub(t *testing.T) {
	a := SizeQty{Large: 2, Medium: 3, Small: 4}
	b := SizeQty{Large: 5, Medium: 1, Small: 4}

	assert.Equal(t, SizeQty{Large: 7, Medium: 4, Small: 8}, a.Add(b))

	// Differences may go negative; nothing clamps
	assert.Equal(t, SizeQty{Large: -3, Medium: 2, Small: 0}, a.Sub(b))
}
