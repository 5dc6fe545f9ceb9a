package variant

import (
	"reflect"
	"testing"
)

func keys(combos []Combination) []string {
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = c.Key
	}
	return out
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		axes []Axis
		want []string
	}{
		{
			name: "Zero axes",
			axes: nil,
			want: nil,
		},
		{
			name: "Single axis",
			axes: []Axis{{Name: "cor", Values: []string{"A", "B"}}},
			want: []string{"A", "B"},
		},
		{
			name: "Two axes full product",
			axes: []Axis{
				{Name: "cor", Values: []string{"A", "B"}},
				{Name: "tamanho", Values: []string{"S", "M"}},
			},
			want: []string{"A / S", "A / M", "B / S", "B / M"},
		},
		{
			name: "Three axes",
			axes: []Axis{
				{Name: "cor", Values: []string{"A", "B"}},
				{Name: "tamanho", Values: []string{"S"}},
				{Name: "material", Values: []string{"X", "Y"}},
			},
			want: []string{"A / S / X", "A / S / Y", "B / S / X", "B / S / Y"},
		},
		{
			name: "Empty axis is skipped not collapsing",
			axes: []Axis{
				{Name: "cor", Values: []string{"A", "B"}},
				{Name: "tamanho", Values: nil},
			},
			want: []string{"A", "B"},
		},
		{
			name: "All axes empty",
			axes: []Axis{{Name: "cor"}, {Name: "tamanho"}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(Generate(tt.axes))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Generate keys = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateSelections(t *testing.T) {
	combos := Generate([]Axis{
		{Name: "cor", Values: []string{"A"}},
		{Name: "tamanho", Values: []string{"M"}},
	})
	if len(combos) != 1 {
		t.Fatalf("expected 1 combination, got %d", len(combos))
	}
	want := []Selection{{Axis: "cor", Value: "A"}, {Axis: "tamanho", Value: "M"}}
	if !reflect.DeepEqual(combos[0].Selections, want) {
		t.Fatalf("Selections = %v, want %v", combos[0].Selections, want)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	axes := []Axis{
		{Name: "cor", Values: []string{"A", "B", "C"}},
		{Name: "tamanho", Values: []string{"S", "M", "L"}},
	}
	first := keys(Generate(axes))
	for i := 0; i < 10; i++ {
		if got := keys(Generate(axes)); !reflect.DeepEqual(got, first) {
			t.Fatalf("ordering changed between runs: %v vs %v", first, got)
		}
	}
}
