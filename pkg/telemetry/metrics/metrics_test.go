package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/config"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "metrics",
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.config != cfg {
		t.Error("collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	collector.RecordAnalysis(analysis.StatusCompleted, 1, time.Millisecond)

	count, err := testutil.GatherAndCount(collector.Registry(), "chatlens_analyzer_analyses_total")
	if err != nil {
		t.Fatalf("GatherAndCount() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 series under the default names, got %d", count)
	}
}

func TestCollector_RecordAnalysis(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordAnalysis(analysis.StatusCompleted, 3, 2*time.Millisecond)
	collector.RecordAnalysis(analysis.StatusCompleted, 1, time.Millisecond)
	collector.RecordAnalysis(analysis.StatusCanceled, 0, time.Millisecond)

	am := collector.analysisMetrics
	tests := []struct {
		status analysis.Status
		want   float64
	}{
		{analysis.StatusCompleted, 2},
		{analysis.StatusCanceled, 1},
		{analysis.StatusInProgress, 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(am.analysesTotal.WithLabelValues(string(tt.status)))
		if got != tt.want {
			t.Errorf("expected %v analyses with status %s, got %v", tt.want, tt.status, got)
		}
	}

	expected := `
# HELP test_metrics_requests_per_dialog Number of request records per analyzed export
# TYPE test_metrics_requests_per_dialog histogram
test_metrics_requests_per_dialog_bucket{le="0"} 1
test_metrics_requests_per_dialog_bucket{le="1"} 2
test_metrics_requests_per_dialog_bucket{le="2"} 2
test_metrics_requests_per_dialog_bucket{le="5"} 3
test_metrics_requests_per_dialog_bucket{le="10"} 3
test_metrics_requests_per_dialog_bucket{le="25"} 3
test_metrics_requests_per_dialog_bucket{le="50"} 3
test_metrics_requests_per_dialog_bucket{le="100"} 3
test_metrics_requests_per_dialog_bucket{le="250"} 3
test_metrics_requests_per_dialog_bucket{le="+Inf"} 3
test_metrics_requests_per_dialog_sum 4
test_metrics_requests_per_dialog_count 3
`
	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "test_metrics_requests_per_dialog"); err != nil {
		t.Errorf("unexpected histogram: %v", err)
	}
}

func TestCollector_UpdateDialogStatus(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	gauge := collector.analysisMetrics.dialogStatus

	collector.UpdateDialogStatus("chat.json", analysis.StatusInProgress)
	collector.UpdateDialogStatus("chat.json", analysis.StatusCompleted)

	want := map[analysis.Status]float64{
		analysis.StatusCompleted:  1,
		analysis.StatusCanceled:   0,
		analysis.StatusInProgress: 0,
	}
	for status, value := range want {
		got := testutil.ToFloat64(gauge.WithLabelValues("chat.json", string(status)))
		if got != value {
			t.Errorf("expected %s=%v, got %v", status, value, got)
		}
	}
}

func TestCollector_DialogStatusCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.sources = NewSourceLimiter(2)

	if !collector.UpdateDialogStatus("a.json", analysis.StatusCompleted) {
		t.Error("expected first source to be tracked")
	}
	if !collector.UpdateDialogStatus("b.json", analysis.StatusCompleted) {
		t.Error("expected second source to be tracked")
	}
	if collector.UpdateDialogStatus("c.json", analysis.StatusCompleted) {
		t.Error("expected third source to be dropped")
	}
	if !collector.UpdateDialogStatus("a.json", analysis.StatusCanceled) {
		t.Error("expected known source to stay tracked")
	}

	if n := testutil.CollectAndCount(collector.analysisMetrics.dialogStatus); n != 6 {
		t.Errorf("expected 6 series for 2 sources, got %d", n)
	}
}

func TestCollector_RecordLoadError(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordLoadError("decode")
	collector.RecordLoadError("decode")
	collector.RecordLoadError("too_large")

	errorsTotal := collector.loadMetrics.errorsTotal
	if got := testutil.ToFloat64(errorsTotal.WithLabelValues("decode")); got != 2 {
		t.Errorf("expected 2 decode errors, got %v", got)
	}
	if got := testutil.ToFloat64(errorsTotal.WithLabelValues("too_large")); got != 1 {
		t.Errorf("expected 1 too_large error, got %v", got)
	}
}

func TestCollector_History(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordHistoryStore(nil)
	collector.RecordHistoryStore(errors.New("locked"))
	collector.RecordPruned(5)
	collector.RecordPruned(0)

	hm := collector.historyMetrics
	if got := testutil.ToFloat64(hm.writesTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("expected 1 successful write, got %v", got)
	}
	if got := testutil.ToFloat64(hm.writesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 failed write, got %v", got)
	}
	if got := testutil.ToFloat64(hm.prunedTotal); got != 5 {
		t.Errorf("expected 5 pruned, got %v", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordAnalysis(analysis.StatusCompleted, 1, time.Millisecond)
	collector.RecordLoadError("decode")
	collector.RecordDocumentSize(1024)
	collector.RecordHistoryStore(nil)
	collector.RecordPruned(3)
	if collector.UpdateDialogStatus("a.json", analysis.StatusCompleted) {
		t.Error("expected disabled collector to drop dialog status")
	}

	if collector.Enabled() {
		t.Error("expected Enabled() false")
	}
	if got := testutil.ToFloat64(collector.analysisMetrics.analysesTotal.WithLabelValues("completed")); got != 0 {
		t.Errorf("expected nothing recorded, got %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordAnalysis(analysis.StatusInProgress, 1, time.Millisecond)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `test_metrics_analyses_total{status="in_progress"} 1`) {
		t.Errorf("expected analyses_total in scrape, got:\n%s", body)
	}

	resp2, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("second GET failed: %v", err)
	}
	defer resp2.Body.Close()
	body, err = io.ReadAll(resp2.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `promhttp_metric_handler_requests_total{code="200"} 1`) {
		t.Errorf("expected the first scrape to be counted, got:\n%s", body)
	}
}

func TestSourceLimiter(t *testing.T) {
	cl := NewSourceLimiter(3)

	for i := 0; i < 3; i++ {
		if !cl.Allow(fmt.Sprintf("source-%d", i)) {
			t.Errorf("expected source-%d to be allowed", i)
		}
	}
	if cl.Allow("source-3") {
		t.Error("expected limit to reject a new label")
	}
	if !cl.Allow("source-0") {
		t.Error("expected known label to be allowed")
	}
	if cl.Len() != 3 {
		t.Errorf("expected 3 tracked sources, got %d", cl.Len())
	}
}
