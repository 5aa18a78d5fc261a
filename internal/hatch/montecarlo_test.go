package hatch

import (
	"errors"
	"math"
	"testing"
)

func TestParseTarget(t *testing.T) {
	table := DefaultTable()
	cases := map[string]ResultKey{
		"Bronze Bunny":              {Index: 0},
		"Shiny Silver Fox":          {Index: 1, Mods: ModShiny},
		"Mythic Royal Trophy":       {Index: 6, Mods: ModMythic},
		"Shiny Mythic Royal Trophy": {Index: 6, Mods: ModShiny | ModMythic},
	}
	for label, want := range cases {
		got, err := ParseTarget(table, label)
		if err != nil {
			t.Fatalf("%q: %v", label, err)
		}
		if got != want {
			t.Fatalf("%q: got %+v want %+v", label, got, want)
		}
	}
	for _, bad := range []string{"Mythic Bronze Bunny", "Plastic Duck", ""} {
		if _, err := ParseTarget(table, bad); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("%q: expected ErrInvalidTarget, got %v", bad, err)
		}
	}
}

func TestRunTrialsFixedBudget(t *testing.T) {
	p := DefaultParams()
	tp := TrialParams{
		Table:  DefaultTable(),
		Params: p,
		Target: ResultKey{Index: 0},
		Budget: 1000,
		RNG:    NewSeededRNG(12),
	}
	st, err := RunTrials(tp, GoalFixedBudget, 200)
	if err != nil {
		t.Fatal(err)
	}
	w, _ := ApplyLuck(tp.Table, 1)
	want := 1000 * w[0].NormalizedProbability * (1 - p.ShinyChance())
	if math.Abs(st.Mean-want)/want > 0.02 {
		t.Fatalf("mean=%v want~%v", st.Mean, want)
	}
	if len(st.Samples) != 200 || st.P50 > st.P90 || st.P90 > st.P99 {
		t.Fatalf("bad stats %+v", st)
	}
}

func TestRunTrialsFirstHit(t *testing.T) {
	p := DefaultParams()
	tp := TrialParams{
		Table:  DefaultTable(),
		Params: p,
		Target: ResultKey{Index: 2}, // plain Golden Dragon
		RNG:    NewSeededRNG(13),
	}
	st, err := RunTrials(tp, GoalFirstHit, 3000)
	if err != nil {
		t.Fatal(err)
	}
	w, _ := ApplyLuck(tp.Table, 1)
	want := 1 / (w[2].NormalizedProbability * (1 - p.ShinyChance()))
	if math.Abs(st.Mean-want)/want > 0.1 {
		t.Fatalf("mean=%v want~%v", st.Mean, want)
	}
}

func TestRunTrialsFirstHitCap(t *testing.T) {
	tp := TrialParams{
		Table:   DefaultTable(),
		Params:  DefaultParams(),
		Target:  ResultKey{Index: 6, Mods: ModShiny | ModMythic},
		MaxEggs: 50,
		RNG:     NewSeededRNG(14),
	}
	st, err := RunTrials(tp, GoalFirstHit, 10)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mean != 50 {
		t.Fatalf("capped trials should record MaxEggs, mean=%v", st.Mean)
	}
}

func TestRunTrialsErrors(t *testing.T) {
	p := DefaultParams()
	if err := p.SetShinyPercent(0); err != nil {
		t.Fatal(err)
	}
	tp := TrialParams{Table: DefaultTable(), Params: p, Target: ResultKey{Index: 0, Mods: ModShiny}}
	if _, err := RunTrials(tp, GoalFirstHit, 1); !errors.Is(err, ErrUnreachableTarget) {
		t.Fatalf("expected ErrUnreachableTarget, got %v", err)
	}
	tp.Target = ResultKey{Index: 99}
	if _, err := RunTrials(tp, GoalFixedBudget, 1); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if _, err := RunTrials(tp, TrialGoal("forever"), 1); !errors.Is(err, ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
}

func TestCalcStats(t *testing.T) {
	st := calcStats([]int{1, 2, 3, 4})
	if st.Mean != 2.5 || st.Var != 1.25 || st.P50 != 2.5 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if empty := calcStats(nil); empty.Mean != 0 || empty.Samples != nil {
		t.Fatalf("empty samples should give zero stats")
	}
}
