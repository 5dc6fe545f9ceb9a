// Package variant enumerates the combination key space of a product's
// variant axes. It only generates keys; stock, SKU and prices are filled in
// per combination by the caller.
package variant

import "strings"

// KeySeparator joins the chosen axis values into a combination key.
const KeySeparator = " / "

// Axis is one dimension of product variation. Axis and value order is
// significant: combinations come out in axis/value insertion order.
type Axis struct {
	Name   string
	Values []string
}

// Selection records the value chosen on one axis.
type Selection struct {
	Axis  string
	Value string
}

// Combination is one cell of the variant matrix, identified by Key.
type Combination struct {
	Key        string
	Selections []Selection
}

// Generate returns the Cartesian product of the non-empty axes. Axes with no
// values are skipped rather than collapsing the whole product. Zero usable
// axes means a simple product: the result is empty and the caller uses the
// base price directly.
func Generate(axes []Axis) []Combination {
	usable := make([]Axis, 0, len(axes))
	for _, a := range axes {
		if len(a.Values) > 0 {
			usable = append(usable, a)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	combos := []Combination{{}}
	for _, axis := range usable {
		next := make([]Combination, 0, len(combos)*len(axis.Values))
		for _, c := range combos {
			for _, v := range axis.Values {
				selections := make([]Selection, len(c.Selections), len(c.Selections)+1)
				copy(selections, c.Selections)
				selections = append(selections, Selection{Axis: axis.Name, Value: v})
				next = append(next, Combination{Selections: selections})
			}
		}
		combos = next
	}

	for i := range combos {
		values := make([]string, len(combos[i].Selections))
		for j, s := range combos[i].Selections {
			values[j] = s.Value
		}
		combos[i].Key = strings.Join(values, KeySeparator)
	}
	return combos
}
