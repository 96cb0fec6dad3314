// Package health serves liveness, readiness and version endpoints next to
// the metrics endpoint in watch mode.
//
//   - /health: the process is up; always 200
//   - /ready: every registered check passed; 200, or 503 when degraded
//   - /version: build information
//
// Checks are plain functions registered by name:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("history", func(ctx context.Context) error {
//	    _, err := storage.Count(ctx, &history.Query{})
//	    return err
//	})
//	health.Register(mux, checker, health.BuildInfo{Version: Version})
//
// Readiness checks run concurrently, each bounded by the checker timeout.
// Liveness runs no checks, so a slow history backend never fails it.
package health
