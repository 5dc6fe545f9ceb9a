package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		base     decimal.Decimal
		sizeAdj  decimal.Decimal
		addOns   []AddOn
		quantity int32
		want     decimal.Decimal
	}{
		{
			name:     "Base with size and add-ons",
			base:     dec("100"),
			sizeAdj:  dec("10"),
			addOns:   []AddOn{{Price: dec("5"), Quantity: 2}},
			quantity: 3,
			want:     dec("360"), // (100+10+10)*3
		},
		{
			name:     "No size no add-ons",
			base:     dec("19.90"),
			sizeAdj:  decimal.Zero,
			quantity: 2,
			want:     dec("39.80"),
		},
		{
			name:     "Multiple add-ons",
			base:     dec("30"),
			sizeAdj:  dec("5"),
			addOns:   []AddOn{{Price: dec("2.50"), Quantity: 1}, {Price: dec("1.25"), Quantity: 4}},
			quantity: 1,
			want:     dec("42.50"),
		},
		{
			name:     "Zero quantity",
			base:     dec("100"),
			quantity: 0,
			want:     decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(tt.base, tt.sizeAdj, tt.addOns, tt.quantity)
			if !got.Equal(tt.want) {
				t.Fatalf("LineTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		value  decimal.Decimal
		typ    DiscountType
		want   decimal.Decimal
	}{
		{name: "Ten percent", amount: dec("200"), value: dec("10"), typ: DiscountPercent, want: dec("180")},
		{name: "Hundred percent", amount: dec("200"), value: dec("100"), typ: DiscountPercent, want: decimal.Zero},
		{name: "Fixed below amount", amount: dec("200"), value: dec("50"), typ: DiscountFixed, want: dec("150")},
		{name: "Fixed clamped at zero", amount: dec("200"), value: dec("250"), typ: DiscountFixed, want: decimal.Zero},
		{name: "No discount", amount: dec("200"), value: dec("99"), typ: DiscountNone, want: dec("200")},
		{name: "Zero percent", amount: dec("200"), value: decimal.Zero, typ: DiscountPercent, want: dec("200")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyDiscount(tt.amount, tt.value, tt.typ)
			if !got.Equal(tt.want) {
				t.Fatalf("ApplyDiscount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDiscountedUnitTotalIsPerUnit(t *testing.T) {
	// A fixed discount of 5 per unit on 3 units takes off 15,
	// not 5 off the line total.
	got := DiscountedUnitTotal(dec("20"), decimal.Zero, nil, 3, dec("5"), DiscountFixed)
	if !got.Equal(dec("45")) {
		t.Fatalf("DiscountedUnitTotal = %s, want 45", got)
	}

	// Percent behaves the same either way but still goes through the unit.
	got = DiscountedUnitTotal(dec("20"), decimal.Zero, nil, 3, dec("50"), DiscountPercent)
	if !got.Equal(dec("30")) {
		t.Fatalf("DiscountedUnitTotal = %s, want 30", got)
	}
}

func TestOrderTotal(t *testing.T) {
	lines := []Line{
		{BasePrice: dec("100"), Quantity: 1},
		{BasePrice: dec("50"), Quantity: 2, DiscountType: DiscountPercent, DiscountValue: dec("10")},
	}
	// line 1: 100; line 2: 45*2 = 90; subtotal 190

	tests := []struct {
		name  string
		value decimal.Decimal
		typ   DiscountType
		want  decimal.Decimal
	}{
		{name: "No order discount", value: decimal.Zero, typ: DiscountNone, want: dec("190")},
		{name: "Order percent on subtotal", value: dec("10"), typ: DiscountPercent, want: dec("171")},
		{name: "Order fixed", value: dec("40"), typ: DiscountFixed, want: dec("150")},
		{name: "Order fixed clamped", value: dec("500"), typ: DiscountFixed, want: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderTotal(lines, tt.value, tt.typ)
			if !got.Equal(tt.want) {
				t.Fatalf("OrderTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOrderTotalEmpty(t *testing.T) {
	if got := OrderTotal(nil, dec("10"), DiscountFixed); !got.Equal(decimal.Zero) {
		t.Fatalf("OrderTotal(nil) = %s, want 0", got)
	}
}

func TestFormatAndParse(t *testing.T) {
	if got := Format(dec("1234.5")); got != "1234.50" {
		t.Fatalf("Format = %q, want %q", got, "1234.50")
	}
	if got := Parse("19.90"); !got.Equal(dec("19.90")) {
		t.Fatalf("Parse = %s, want 19.90", got)
	}
	if got := Parse("garbage"); !got.Equal(decimal.Zero) {
		t.Fatalf("Parse(garbage) = %s, want 0", got)
	}
	if got := ClampValue(dec("-5")); !got.Equal(decimal.Zero) {
		t.Fatalf("ClampValue(-5) = %s, want 0", got)
	}
}
