package parallel

import (
	"testing"
	"time"
)

func TestStuckWorkerMonitorAlertsAfterTimeout(t *testing.T) {
	m := NewStuckWorkerMonitor(20*time.Millisecond, 5*time.Millisecond)
	defer m.Shutdown()

	m.Begin(0, "restricted-compile")

	select {
	case alert := <-m.Alerts():
		if alert.WorkerID != 0 {
			t.Errorf("expected worker 0, got %d", alert.WorkerID)
		}
		if alert.Stage != "restricted-compile" {
			t.Errorf("expected stage restricted-compile, got %s", alert.Stage)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected a stuck-worker alert")
	}
}

func TestStuckWorkerMonitorNoAlertOnceEnded(t *testing.T) {
	m := NewStuckWorkerMonitor(20*time.Millisecond, 5*time.Millisecond)
	defer m.Shutdown()

	m.Begin(0, "relaxed-compile")
	m.End(0)

	select {
	case alert := <-m.Alerts():
		t.Fatalf("unexpected alert after End: %+v", alert)
	case <-time.After(80 * time.Millisecond):
	}
}
