package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Quantity is a stock counter tolerant of sloppy upstream input. Records come
// from manual entry and spreadsheet pastes, so a quantity may arrive as a JSON
// number, a numeric string ("4"), an empty string, null, or garbage. Anything
// that does not parse as an integer decodes to zero instead of failing the
// whole document.
type Quantity int

// Int returns the counter as a plain int.
func (q Quantity) Int() int { return int(q) }

func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*q = 0
		return nil
	}

	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*q = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			*q = 0
			return nil
		}
		*q = Quantity(n)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*q = 0
		return nil
	}
	*q = Quantity(int(f))
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(q))), nil
}

// SizeQty groups the three independent size counters tracked for every item.
type SizeQty struct {
	Large  Quantity `json:"large"`
	Medium Quantity `json:"medium"`
	Small  Quantity `json:"small"`
}

// Add returns the member-wise sum of two size triples.
func (s SizeQty) Add(o SizeQty) SizeQty {
	return SizeQty{
		Large:  s.Large + o.Large,
		Medium: s.Medium + o.Medium,
		Small:  s.Small + o.Small,
	}
}

// Sub returns the member-wise difference. Results may go negative; negative
// stock is a visible data-quality signal, never clamped.
func (s SizeQty) Sub(o SizeQty) SizeQty {
	return SizeQty{
		Large:  s.Large - o.Large,
		Medium: s.Medium - o.Medium,
		Small:  s.Small - o.Small,
	}
}
