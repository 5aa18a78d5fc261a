package hatch

// Modifier is a bit set of the secondary rolls applied after a draw. The
// numeric value doubles as display tie-break order: none < shiny < mythic <
// shiny+mythic.
type Modifier uint8

const (
	ModShiny Modifier = 1 << iota
	ModMythic

	ModNone Modifier = 0
)

func (m Modifier) Shiny() bool  { return m&ModShiny != 0 }
func (m Modifier) Mythic() bool { return m&ModMythic != 0 }

// Prefix is the label text placed before the pet name.
func (m Modifier) Prefix() string {
	switch {
	case m.Shiny() && m.Mythic():
		return "Shiny Mythic "
	case m.Shiny():
		return "Shiny "
	case m.Mythic():
		return "Mythic "
	}
	return ""
}

// Mods builds a Modifier from flags.
func Mods(shiny, mythic bool) Modifier {
	var m Modifier
	if shiny {
		m |= ModShiny
	}
	if mythic {
		m |= ModMythic
	}
	return m
}

// Label is the display name of an outcome with modifiers.
func Label(o Outcome, m Modifier) string {
	return m.Prefix() + o.Name
}

// RollModifiers rolls shiny and mythic independently. Mythic is only rolled
// for luck-affected tiers.
func RollModifiers(o Outcome, p Params, rng RandomSource) Modifier {
	if rng == nil {
		rng = DefaultRNG()
	}
	// params are validated on set, so Bernoulli cannot fail here
	shiny, _ := Bernoulli(p.shinyChance, rng)
	mythic := false
	if o.Rarity.LuckAffected() {
		mythic, _ = Bernoulli(p.mythicChance, rng)
	}
	return Mods(shiny, mythic)
}
