// types.go
package eggs

// RawConfig is an egg file as loaded from YAML.
type RawConfig struct {
	Version string      `yaml:"version"`
	Params  ParamConfig `yaml:"params"`
	Pets    []PetConfig `yaml:"pets,omitempty"`
	Notes   string      `yaml:"notes,omitempty"`
}

// ParamConfig holds optional overrides; nil means "inherit".
type ParamConfig struct {
	LuckPercent   *float64 `yaml:"luck_percent,omitempty"`
	ShinyPercent  *float64 `yaml:"shiny_percent,omitempty"`
	MythicPercent *float64 `yaml:"mythic_percent,omitempty"`
}

type PetConfig struct {
	Name       string  `yaml:"name"`
	BaseChance float64 `yaml:"base_chance"` // percent
	Rarity     string  `yaml:"rarity"`      // common | unique | epic | legendary | secret
}
