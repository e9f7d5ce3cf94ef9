package dispatcher_test

import (
	"testing"
	"time"

	"github.com/dshills/easyprint/internal/dispatcher"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/input"
)

func TestMetricsRecording(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("a", ok)

	for i := 0; i < 3; i++ {
		d.Dispatch(input.Action{Name: "a"})
	}
	d.Dispatch(input.Action{Name: "missing"})

	snap := d.Metrics().Snapshot()
	if snap.TotalDispatches != 4 {
		t.Errorf("expected 4 dispatches, got %d", snap.TotalDispatches)
	}
	if snap.TotalErrors != 1 {
		t.Errorf("expected 1 error, got %d", snap.TotalErrors)
	}
	if snap.ActionCount != 2 {
		t.Errorf("expected 2 actions, got %d", snap.ActionCount)
	}

	stats := d.Metrics().ActionStats("a")
	if stats == nil || stats.DispatchCount != 3 {
		t.Fatalf("expected 3 dispatches of a, got %+v", stats)
	}
	if stats.ErrorRate() != 0 {
		t.Errorf("expected no errors for a, got %v", stats.ErrorRate())
	}
}

func TestMetricsTopActionsAndReset(t *testing.T) {
	m := dispatcher.NewMetrics()
	m.RecordDispatch("b", time.Millisecond, handler.StatusOK)
	m.RecordDispatch("a", time.Millisecond, handler.StatusNoOp)
	m.RecordDispatch("b", 2*time.Millisecond, handler.StatusError)

	top := m.TopActions(1)
	if len(top) != 1 || top[0].Name != "b" {
		t.Fatalf("expected b on top, got %+v", top)
	}
	if top[0].MaxDuration != 2*time.Millisecond {
		t.Errorf("expected max duration 2ms, got %v", top[0].MaxDuration)
	}
	if top[0].ErrorRate() != 50 {
		t.Errorf("expected 50%% error rate, got %v", top[0].ErrorRate())
	}
	if a := m.ActionStats("a"); a.NoOpCount != 1 {
		t.Errorf("expected a no-op, got %+v", a)
	}
	if m.Snapshot().AverageDuration == 0 {
		t.Error("expected an average duration")
	}

	m.Reset()
	if m.Snapshot().TotalDispatches != 0 || m.ActionStats("b") != nil {
		t.Error("expected metrics to be cleared")
	}
}
