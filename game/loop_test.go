package game

import "testing"

func TestUpdateIgnoredWhilePaused(t *testing.T) {
	g := newTestGame(t, Options{Seed: 21, Headless: true, Mode: ModePopulation})

	g.Update(1.0)
	if g.Tick() != 0 {
		t.Fatalf("tick = %d while paused, want 0", g.Tick())
	}
}

func TestUpdateConsumesFixedSteps(t *testing.T) {
	g := newTestGame(t, Options{Seed: 21, Headless: true, Mode: ModePopulation})
	g.Play()

	g.Update(0.1)
	if got := g.Tick(); got < 5 || got > 6 {
		t.Fatalf("tick after 100ms = %d, want 5 or 6", got)
	}

	// Leftover fraction carries into the next frame instead of being lost.
	before := g.Tick()
	g.Update(0.1)
	total := g.Tick()
	if total < 11 || total > 12 {
		t.Fatalf("tick after 200ms = %d, want 11 or 12 (was %d)", total, before)
	}
}

func TestUpdateSpeedMultiplier(t *testing.T) {
	g := newTestGame(t, Options{Seed: 21, Headless: true, Mode: ModePopulation})
	g.Play()

	g.SetSpeedIndex(2) // 10x
	if g.Speed() != 10 {
		t.Fatalf("speed = %d, want 10", g.Speed())
	}

	g.Update(0.1)
	if got := g.Tick(); got < 59 || got > 60 {
		t.Fatalf("tick after 100ms at 10x = %d, want ~60", got)
	}
}

func TestUpdateBacklogCap(t *testing.T) {
	g := newTestGame(t, Options{Seed: 21, Headless: true, Mode: ModePopulation})
	g.Play()

	// A multi-second stall must not trigger a catch-up spiral: the backlog
	// is capped at half a second of simulated time per multiplier unit.
	g.Update(10.0)
	if got := g.Tick(); got > 30 {
		t.Fatalf("tick after 10s stall = %d, want at most 30", got)
	}
}

func TestCycleSpeedWraps(t *testing.T) {
	g := newTestGame(t, Options{Seed: 21, Headless: true, Mode: ModePopulation})

	start := g.Speed()
	seen := map[int]bool{start: true}
	for i := 0; i < 2; i++ {
		g.CycleSpeed()
		seen[g.Speed()] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct speeds, saw %v", seen)
	}
	g.CycleSpeed()
	if g.Speed() != start {
		t.Fatalf("speed did not wrap: %d, want %d", g.Speed(), start)
	}
}
