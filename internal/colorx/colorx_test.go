package colorx

import "testing"

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    HSL
		wantErr bool
	}{
		{name: "Pure red", hex: "#FF0000", want: HSL{H: 0, S: 100, L: 50}},
		{name: "Black", hex: "#000000", want: HSL{H: 0, S: 0, L: 0}},
		{name: "White", hex: "#FFFFFF", want: HSL{H: 0, S: 0, L: 100}},
		{name: "Pure green", hex: "00FF00", want: HSL{H: 120, S: 100, L: 50}},
		{name: "Pure blue", hex: "#0000FF", want: HSL{H: 240, S: 100, L: 50}},
		{name: "Mid gray is achromatic", hex: "#808080", want: HSL{H: 0, S: 0, L: 50}},
		{name: "Lowercase accepted", hex: "#ff8000", want: HSL{H: 30, S: 100, L: 50}},
		{name: "Too short", hex: "#FFF", wantErr: true},
		{name: "Too long", hex: "#FFFFFFF", wantErr: true},
		{name: "Non-hex characters", hex: "#GGHHII", wantErr: true},
		{name: "Empty", hex: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToHSL(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("HexToHSL(%q) expected error, got %+v", tt.hex, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("HexToHSL(%q) returned error: %v", tt.hex, err)
			}
			if got != tt.want {
				t.Fatalf("HexToHSL(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{name: "White background gets black text", hex: "#FFFFFF", want: "black"},
		{name: "Black background gets white text", hex: "#000000", want: "white"},
		{name: "Pure red is dark", hex: "#FF0000", want: "white"},
		{name: "Pure yellow is light", hex: "#FFFF00", want: "black"},
		{name: "Malformed falls back to black", hex: "not-a-color", want: "black"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContrastColor(tt.hex); got != tt.want {
				t.Fatalf("ContrastColor(%q) = %q, want %q", tt.hex, got, tt.want)
			}
		})
	}
}

func TestContrastColorIsStable(t *testing.T) {
	// Near the luminance boundary the decision must not flap between calls.
	first := ContrastColor("#808080")
	for i := 0; i < 100; i++ {
		if got := ContrastColor("#808080"); got != first {
			t.Fatalf("ContrastColor flapped: %q then %q", first, got)
		}
	}
}

func TestCSSValue(t *testing.T) {
	c := HSL{H: 210, S: 40, L: 98}
	if got, want := c.CSSValue(), "210 40% 98%"; got != want {
		t.Fatalf("CSSValue() = %q, want %q", got, want)
	}
}
