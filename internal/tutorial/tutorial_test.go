package tutorial

import "testing"

func steps(n int) []Step {
	out := make([]Step, n)
	for i := range out {
		out[i] = Step{ID: string(rune('a' + i)), Title: "t", Body: "b"}
	}
	return out
}

func TestWalkthrough_Sequencing(t *testing.T) {
	w := New(steps(3))
	if w.Active() {
		t.Fatalf("inactive before Start")
	}
	w.Start()
	cur, ok := w.Current()
	if !ok || cur.ID != "a" {
		t.Fatalf("first step: %+v ok=%v", cur, ok)
	}

	w.Next()
	if cur, _ := w.Current(); cur.ID != "b" {
		t.Fatalf("after Next: %s", cur.ID)
	}
	w.Prev()
	if cur, _ := w.Current(); cur.ID != "a" {
		t.Fatalf("after Prev: %s", cur.ID)
	}
	w.Prev() // no-op on first step
	if cur, _ := w.Current(); cur.ID != "a" {
		t.Fatalf("Prev on first step moved: %s", cur.ID)
	}

	w.Next()
	w.Next()
	w.Next() // past the last step
	if w.Active() {
		t.Fatalf("walkthrough should finish after last step")
	}
	if !w.Completed() {
		t.Fatalf("finishing should mark completion")
	}
}

func TestWalkthrough_SkipCompletes(t *testing.T) {
	w := New(steps(5))
	w.Start()
	w.Next()
	w.Skip()
	if w.Active() || !w.Completed() {
		t.Fatalf("skip should finish the walkthrough")
	}
}

func TestWalkthrough_OnNextSideEffect(t *testing.T) {
	fired := 0
	s := steps(2)
	s[0].OnNext = func() { fired++ }
	w := New(s)
	w.Start()
	w.Next()
	if fired != 1 {
		t.Fatalf("OnNext fired %d times", fired)
	}
	w.Prev()
	w.Next()
	if fired != 2 {
		t.Fatalf("OnNext should fire each time the step is advanced past, got %d", fired)
	}
}

func TestWalkthrough_Restart(t *testing.T) {
	w := New(steps(2))
	w.Start()
	w.Skip()
	w.Start()
	if !w.Active() || w.Completed() {
		t.Fatalf("restart should reactivate")
	}
	if pos, total := w.Position(); pos != 1 || total != 2 {
		t.Fatalf("restart position: %d/%d", pos, total)
	}
}

func TestDefaultSteps_CoverTheTour(t *testing.T) {
	s := DefaultSteps()
	if len(s) != 9 {
		t.Fatalf("expected 9 steps, got %d", len(s))
	}
	if s[0].ID != "welcome" || s[len(s)-1].ID != "complete" {
		t.Fatalf("tour should open with welcome and end with complete")
	}
	for _, st := range s {
		if st.Title == "" || st.Body == "" {
			t.Fatalf("step %s missing copy", st.ID)
		}
	}
}
