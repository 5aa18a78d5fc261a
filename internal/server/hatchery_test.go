package server

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/xtding233/egg-hatchery/internal/eggs"
	"github.com/xtding233/egg-hatchery/internal/hatch"
)

func newTestHatchery(t *testing.T, opts ...Option) *Hatchery {
	t.Helper()
	opts = append([]Option{WithRNG(hatch.NewSeededRNG(1))}, opts...)
	h, err := NewHatchery(hatch.DefaultTable(), hatch.DefaultParams(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestHatcheryHatch(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHatchery(t, WithLogger(log.New(&buf, "", 0)))
	rep, err := h.Hatch(500)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(rep.RunID); err != nil {
		t.Fatalf("run id %q: %v", rep.RunID, err)
	}
	total := 0
	for _, r := range rep.Rows {
		total += r.Count
	}
	if total != 500 || rep.Eggs != 500 {
		t.Fatalf("total=%d eggs=%d", total, rep.Eggs)
	}
	if !strings.Contains(buf.String(), rep.RunID) {
		t.Fatalf("run not logged: %q", buf.String())
	}
	if _, err := h.Hatch(0); !errors.Is(err, hatch.ErrInvalidEggCount) {
		t.Fatalf("expected ErrInvalidEggCount, got %v", err)
	}
}

func TestHatcheryUpdateAtomic(t *testing.T) {
	h := newTestHatchery(t)
	luck, bad := 300.0, 150.0
	if _, err := h.Update(ParamUpdate{LuckPercent: &luck, ShinyPercent: &bad}); !errors.Is(err, hatch.ErrInvalidPercent) {
		t.Fatalf("expected ErrInvalidPercent, got %v", err)
	}
	if h.Params() != hatch.DefaultParams() {
		t.Fatalf("failed update leaked: %+v", h.Params())
	}
	p, err := h.SetLuckPercent(luck)
	if err != nil {
		t.Fatal(err)
	}
	if p.LuckPercent() != 300 || h.Params().LuckPercent() != 300 {
		t.Fatalf("luck not applied")
	}
}

func TestHatcheryMaxEggs(t *testing.T) {
	h := newTestHatchery(t, WithMaxEggs(100))
	if h.MaxEggs() != 100 {
		t.Fatalf("max eggs %d", h.MaxEggs())
	}
	if _, err := h.Hatch(100); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Hatch(101); !errors.Is(err, hatch.ErrInvalidEggCount) {
		t.Fatalf("expected ErrInvalidEggCount, got %v", err)
	}
	if newTestHatchery(t, WithMaxEggs(0)).MaxEggs() != DefaultMaxEggs {
		t.Fatalf("non-positive cap should keep the default")
	}
}

func TestHatcheryOriginalOdds(t *testing.T) {
	h := newTestHatchery(t)
	label, odds, err := h.OriginalOdds("Bronze Bunny", false, false)
	if err != nil {
		t.Fatal(err)
	}
	if label != "Bronze Bunny" || odds != "1 in 2" {
		t.Fatalf("got %q %q", label, odds)
	}
	if _, _, err := h.OriginalOdds("Bronze Bunny", false, true); !errors.Is(err, hatch.ErrInvalidTarget) {
		t.Fatalf("common pets cannot be mythic, got %v", err)
	}
	if _, _, err := h.OriginalOdds("Nobody", false, false); !errors.Is(err, hatch.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestWatchEggReloads(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "eggs", "default.yaml")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("pets:\n  - { name: Bronze Bunny, base_chance: 50, rarity: common }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := eggs.NewLoader(dir)
	table, params, err := l.Load("")
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHatchery(table, params)
	if err != nil {
		t.Fatal(err)
	}
	w := WatchEgg(l, "", h, 10*time.Millisecond)
	defer w.Stop()

	body := "params:\n  luck_percent: 42\npets:\n  - { name: Frost Penguin, base_chance: 50, rarity: common }\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(p, future, future); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, _, err := h.OriginalOdds("Frost Penguin", false, false); err == nil && h.Params().LuckPercent() == 42 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hatchery was not reloaded")
}

func TestWatchEggKeepsRuntimeParams(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "eggs", "default.yaml")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	pets := "pets:\n  - { name: Bronze Bunny, base_chance: 50, rarity: common }\n"
	if err := os.WriteFile(p, []byte(pets), 0o644); err != nil {
		t.Fatal(err)
	}
	l := eggs.NewLoader(dir)
	table, params, err := l.Load("")
	if err != nil {
		t.Fatal(err)
	}
	var buf syncBuffer
	h, err := NewHatchery(table, params, WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.SetLuckPercent(500); err != nil {
		t.Fatal(err)
	}
	w := WatchEgg(l, "", h, 10*time.Millisecond)
	defer w.Stop()

	if err := os.WriteFile(p, []byte("notes: retuned\n"+pets), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(p, future, future); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && !strings.Contains(buf.String(), "reloaded") {
		time.Sleep(10 * time.Millisecond)
	}
	if !strings.Contains(buf.String(), "reloaded") {
		t.Fatalf("hatchery was not reloaded")
	}
	if got := h.Params().LuckPercent(); got != 500 {
		t.Fatalf("luck after notes-only edit: %v, want 500", got)
	}
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to log into.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
