package rtreedbg_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mist90/RTreeStar/rtreedbg"
)

func TestLoggerThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := rtreedbg.NewLogger(&buf, rtreedbg.Warning)

	l.Log(rtreedbg.Debug, "debug message")
	if buf.Len() != 0 {
		t.Fatalf("Debug severity should be below Warning threshold, got output %q", buf.String())
	}

	l.Warningf("overflow on axis %d", 2)
	if !strings.Contains(buf.String(), "overflow on axis 2") {
		t.Fatalf("expected Warning message in output, got %q", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *rtreedbg.Logger
	l.Errorf("should not panic") // nil receiver must no-op
}
