package parallel

import "testing"

func TestStatsTracksExploredCount(t *testing.T) {
	s := NewStats()
	s.RecordExplored()
	s.RecordExplored()
	s.RecordExplored()

	snap := s.Snapshot()
	if snap.SubproblemsExplored != 3 {
		t.Errorf("expected 3 explored, got %d", snap.SubproblemsExplored)
	}
}

func TestStatsTracksPeakIdleWorkers(t *testing.T) {
	s := NewStats()
	s.RecordIdleWorkers(1)
	s.RecordIdleWorkers(4)
	s.RecordIdleWorkers(2)

	snap := s.Snapshot()
	if snap.PeakIdleWorkers != 4 {
		t.Errorf("expected peak idle 4, got %d", snap.PeakIdleWorkers)
	}
}

func TestStatsSnapshotStringDoesNotPanic(t *testing.T) {
	snap := NewStats().Snapshot()
	if snap.String() == "" {
		t.Error("expected non-empty snapshot string")
	}
}
