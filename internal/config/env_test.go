package config

import "testing"

type sample struct {
	Addr string  `env:"HATCH_TEST_ADDR" envDefault:":8080"`
	Luck float64 `env:"HATCH_TEST_LUCK" envDefault:"100"`
}

func TestParseEnvDefaults(t *testing.T) {
	var s sample
	if err := ParseEnv(&s); err != nil {
		t.Fatal(err)
	}
	if s.Addr != ":8080" || s.Luck != 100 {
		t.Fatalf("unexpected defaults %+v", s)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("HATCH_TEST_ADDR", "127.0.0.1:9000")
	t.Setenv("HATCH_TEST_LUCK", "250.5")
	var s sample
	if err := ParseEnv(&s); err != nil {
		t.Fatal(err)
	}
	if s.Addr != "127.0.0.1:9000" || s.Luck != 250.5 {
		t.Fatalf("unexpected values %+v", s)
	}
}

func TestParseEnvInvalid(t *testing.T) {
	t.Setenv("HATCH_TEST_LUCK", "lots")
	var s sample
	if err := ParseEnv(&s); err == nil {
		t.Fatalf("expected parse error")
	}
}
