package corelog

import (
	"bytes"
	"strings"
	"testing"
)

// TestZerologSink_WritesMessageAndLevel verifies a ZerologSink renders both
// the message text and its level into the console output.
func TestZerologSink_WritesMessageAndLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(&buf, Trace)

	sink.Log(Warning, "disk usage high")

	out := buf.String()
	if !strings.Contains(out, "disk usage high") {
		t.Fatalf("output = %q, want it to contain the logged message", out)
	}
	if !strings.Contains(strings.ToUpper(out), "WRN") && !strings.Contains(strings.ToUpper(out), "WARN") {
		t.Fatalf("output = %q, want it to reflect the warning level", out)
	}
}

// TestZerologSink_BelowMinLevelIsFiltered verifies messages under the
// configured minimum level are dropped, matching zerolog.Logger.Level
// semantics.
func TestZerologSink_BelowMinLevelIsFiltered(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(&buf, Error)

	sink.Log(Debug, "should not appear")

	if buf.Len() != 0 {
		t.Fatalf("output = %q, want empty output for a filtered level", buf.String())
	}
}

// TestNewZerologSink_NilWriterDefaultsToStdout verifies passing a nil
// io.Writer doesn't panic and falls back to os.Stdout.
func TestNewZerologSink_NilWriterDefaultsToStdout(t *testing.T) {
	sink := NewZerologSink(nil, Info)
	sink.Log(Info, "goes to stdout")
}
