package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "BharatGPT is typing")
	s.start()
	time.Sleep(300 * time.Millisecond)
	s.stopWithSuccess("Done")

	out := buf.String()
	if !strings.Contains(out, "BharatGPT is typing") {
		t.Errorf("spinner never drew its message: %q", out)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, "Done") {
		t.Errorf("missing success line: %q", out)
	}
	if !strings.Contains(out, "\033[?25h") {
		t.Error("cursor not restored")
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "BharatGPT is typing")
	s.start()
	time.Sleep(30 * time.Millisecond)
	s.stopWithError()

	// Stopping twice must not panic
	s.stopOnce()

	if strings.Contains(buf.String(), "✓") {
		t.Error("error stop should not print success")
	}
}

func TestSpinner_Dots(t *testing.T) {
	s := newSpinner(&bytes.Buffer{}, "typing")

	for frame, lit := range []int{1, 2, 3, 1} {
		s.frame = frame
		if got := strings.Count(s.render(), "●"); got != lit {
			t.Errorf("frame %d: %d dots lit, want %d", frame, got, lit)
		}
	}
}
