package engine

import (
	"testing"
	"time"
)

func TestTimeControlFixed(t *testing.T) {
	var tc = NewTimeControl()
	tc.Go(0, false)
	if !tc.CanSearchDeeper() || tc.CheckTimeBudget() {
		t.Error("unlimited search stopped")
	}
	tc.Go(1, false)
	time.Sleep(5 * time.Millisecond)
	if tc.CanSearchDeeper() || !tc.CheckTimeBudget() {
		t.Error("budget not enforced")
	}
	tc.SetInfinite(true)
	if !tc.CanSearchDeeper() || tc.CheckTimeBudget() {
		t.Error("infinite search stopped")
	}
	tc.SetInfinite(false)
	if !tc.CheckTimeBudget() {
		t.Error("budget lost after infinite cleared")
	}
}

func TestTimeControlClock(t *testing.T) {
	var tc = NewTimeControl()
	tc.SetMoveOverhead(0)
	tc.GoClock(60_000, 60_000, 0, 0, 100, false)
	var soft, hard = tc.Limits()
	if soft <= 0 || soft > hard || hard > 60*time.Second {
		t.Error(soft, hard)
	}

	tc.GoClock(60_000, 60_000, 0, 0, 0, false)
	var bookSoft, _ = tc.Limits()
	if bookSoft <= soft {
		t.Error("no extra time after book", bookSoft, soft)
	}

	tc.GoClock(10_000, 0, 0, 1, 100, false)
	soft, hard = tc.Limits()
	if hard > 10*time.Second || soft > hard {
		t.Error(soft, hard)
	}
}
