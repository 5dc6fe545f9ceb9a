package storectx

import "plazoo-system/internal/colorx"

const (
	VarPrimary             = "--store-primary"
	VarPrimaryForeground   = "--store-primary-foreground"
	VarSecondary           = "--store-secondary"
	VarSecondaryForeground = "--store-secondary-foreground"
)

// Neutral defaults used when a store has no branding colors or the stored
// hex is malformed.
const (
	defaultPrimary             = "222 47% 11%"
	defaultPrimaryForeground   = "white"
	defaultSecondary           = "210 40% 96%"
	defaultSecondaryForeground = "black"
)

// ThemeVars derives the CSS custom property values for a store's branding.
// Malformed or missing colors fall back to the neutral defaults instead of
// surfacing a parse error.
func ThemeVars(s Store) map[string]string {
	vars := map[string]string{
		VarPrimary:             defaultPrimary,
		VarPrimaryForeground:   defaultPrimaryForeground,
		VarSecondary:           defaultSecondary,
		VarSecondaryForeground: defaultSecondaryForeground,
	}
	if s.PrimaryColor != nil {
		if hsl, err := colorx.HexToHSL(*s.PrimaryColor); err == nil {
			vars[VarPrimary] = hsl.CSSValue()
			vars[VarPrimaryForeground] = colorx.ContrastColor(*s.PrimaryColor)
		}
	}
	if s.SecondaryColor != nil {
		if hsl, err := colorx.HexToHSL(*s.SecondaryColor); err == nil {
			vars[VarSecondary] = hsl.CSSValue()
			vars[VarSecondaryForeground] = colorx.ContrastColor(*s.SecondaryColor)
		}
	}
	return vars
}
