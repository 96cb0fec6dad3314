package retention

import (
	"context"
	"testing"
	"time"

	"mercator-hq/chatlens/pkg/history"
)

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{"valid daily schedule", "0 3 * * *", true, false},
		{"valid hourly schedule", "0 * * * *", true, false},
		{"empty schedule", "", false, false},
		{"invalid schedule", "invalid cron", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pruner := NewPruner(history.NewMemoryStorage(), &Config{
				Schedule:      tt.schedule,
				RetentionDays: 90,
			})
			scheduler := NewScheduler(pruner)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := scheduler.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Errorf("expected error %v, got %v", tt.wantError, err)
			}
			if scheduler.IsRunning() != tt.wantRunning {
				t.Errorf("expected running %v, got %v", tt.wantRunning, scheduler.IsRunning())
			}

			next := scheduler.NextRun()
			if tt.wantRunning && next == nil {
				t.Error("expected next run for running scheduler")
			}
			if !tt.wantRunning && next != nil {
				t.Errorf("expected no next run, got %s", next)
			}

			scheduler.Stop()
			if scheduler.IsRunning() {
				t.Error("scheduler still running after Stop()")
			}
		})
	}
}

func TestScheduler_NextRun(t *testing.T) {
	pruner := NewPruner(history.NewMemoryStorage(), &Config{Schedule: "0 3 * * *"})
	scheduler := NewScheduler(pruner)

	if err := scheduler.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer scheduler.Stop()

	next := scheduler.NextRun()
	if next == nil {
		t.Fatal("expected next run")
	}
	local := next.Local()
	if local.Hour() != 3 || local.Minute() != 0 {
		t.Errorf("expected next run at 03:00, got %s", local.Format(time.Kitchen))
	}
	if !next.After(time.Now()) {
		t.Errorf("expected next run in the future, got %s", next)
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	pruner := NewPruner(history.NewMemoryStorage(), &Config{Schedule: "0 3 * * *"})
	scheduler := NewScheduler(pruner)

	ctx, cancel := context.WithCancel(context.Background())
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for scheduler.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if scheduler.IsRunning() {
		t.Error("scheduler still running after context cancelled")
	}
}

func TestScheduler_Restart(t *testing.T) {
	pruner := NewPruner(history.NewMemoryStorage(), &Config{Schedule: "0 3 * * *"})
	scheduler := NewScheduler(pruner)
	ctx := context.Background()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	scheduler.Stop()
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("second Start() failed: %v", err)
	}
	defer scheduler.Stop()

	if n := len(scheduler.cron.Entries()); n != 1 {
		t.Errorf("expected 1 cron entry after restart, got %d", n)
	}
}

func TestScheduler_RunsPrune(t *testing.T) {
	storage := history.NewMemoryStorage()
	pruned := make(chan int64, 4)

	pruner := NewPruner(storage, &Config{Schedule: "@every 1s", RetentionDays: 30})
	pruner.OnPrune(func(deleted int64) { pruned <- deleted })

	scheduler := NewScheduler(pruner)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer scheduler.Stop()

	select {
	case deleted := <-pruned:
		if deleted != 0 {
			t.Errorf("expected nothing pruned from an empty store, got %d", deleted)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected the scheduled prune to run")
	}
}
