package types

import "fmt"

// KWh is an amount of energy in kilowatt-hours.
type KWh float64

// Humanized returns a human-readable string with automatic unit (Wh, kWh, MWh).
func (e KWh) Humanized() string {
	v := float64(e)
	a := abs(v)
	switch {
	case a == 0:
		return "0 Wh"
	case a >= 1000:
		return fmt.Sprintf("%.2f MWh", e.MWh())
	case a >= 1:
		return fmt.Sprintf("%.2f kWh", v)
	default:
		return fmt.Sprintf("%.2f Wh", e.Wh())
	}
}

// Wh returns the energy in watt-hours.
func (e KWh) Wh() float64 { return float64(e) * 1000 }

// MWh returns the energy in megawatt-hours.
func (e KWh) MWh() float64 { return float64(e) / 1000 }

// Grams is a mass of CO2-equivalent in grams.
type Grams float64

// Humanized returns a human-readable string with automatic unit (mg, g, kg, t).
func (g Grams) Humanized() string {
	v := float64(g)
	a := abs(v)
	switch {
	case a == 0:
		return "0 g"
	case a >= 1e6:
		return fmt.Sprintf("%.2f t", g.Tonnes())
	case a >= 1e3:
		return fmt.Sprintf("%.2f kg", g.KG())
	case a >= 1:
		return fmt.Sprintf("%.2f g", v)
	default:
		return fmt.Sprintf("%.2f mg", v*1e3)
	}
}

// KG returns the mass in kilograms.
func (g Grams) KG() float64 { return float64(g) / 1e3 }

// Tonnes returns the mass in metric tonnes.
func (g Grams) Tonnes() float64 { return float64(g) / 1e6 }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
