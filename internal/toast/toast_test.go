package toast

import "testing"

func TestShow_DistinctIdentitiesCoexist(t *testing.T) {
	s := NewSink()
	a := s.Show(SeverityInfo, "saved")
	b := s.Show(SeverityInfo, "saved")
	if a == b {
		t.Fatalf("two shows produced the same identity")
	}
	active := s.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active toasts, got %d", len(active))
	}
	if active[0].ID != a || active[1].ID != b {
		t.Fatalf("insertion order not preserved: %v", active)
	}
}

func TestLifecycle_HappyPath(t *testing.T) {
	s := NewSink()
	id := s.Show(SeveritySuccess, "task created")

	if got := s.Active()[0].State; got != StatePending {
		t.Fatalf("after Show: state %v", got)
	}
	s.MarkVisible(id)
	if got := s.Active()[0].State; got != StateVisible {
		t.Fatalf("after MarkVisible: state %v", got)
	}
	s.Dismiss(id)
	if got := s.Active()[0].State; got != StateLeaving {
		t.Fatalf("after Dismiss: state %v", got)
	}
	s.Remove(id)
	if s.Len() != 0 {
		t.Fatalf("toast not removed")
	}
}

func TestDismissBeforeEntranceTimer_NoLeak(t *testing.T) {
	s := NewSink()
	id := s.Show(SeverityError, "boom")

	// Dismiss lands before the entrance timer fires.
	s.Dismiss(id)
	if got := s.Active()[0].State; got != StateLeaving {
		t.Fatalf("pending toast should move to leaving, got %v", got)
	}

	// The stale entrance timer fires afterwards; it must not resurrect the toast.
	s.MarkVisible(id)
	if got := s.Active()[0].State; got != StateLeaving {
		t.Fatalf("leaving toast resurrected to %v", got)
	}

	s.Remove(id)
	if s.Len() != 0 {
		t.Fatalf("leaked entry after removal")
	}
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s := NewSink()
	s.Show(SeverityWarning, "cap reached")
	s.Remove("nope")
	s.MarkVisible("nope")
	s.Dismiss("nope")
	if s.Len() != 1 {
		t.Fatalf("unknown-id operations disturbed the set")
	}
}
