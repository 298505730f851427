package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelQuiet} {
		if got := ParseLevel(l.String()); got != l {
			t.Errorf("ParseLevel(%q) = %v, want %v", l.String(), got, l)
		}
	}
	if got := ParseLevel("verbose"); got != LevelInfo {
		t.Errorf("ParseLevel(verbose) = %v, want info", got)
	}
	if s := Level(42).String(); s != "unknown" {
		t.Errorf("Level(42).String() = %q", s)
	}
}

func TestConsole_LevelFiltering(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsole(LevelWarn, &out, &errOut)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	got := errOut.String()
	if !strings.Contains(got, "warn 3") || !strings.Contains(got, "error 4") {
		t.Errorf("stderr = %q, want warn and error lines", got)
	}
}

func TestConsole_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsole(LevelDebug, &out, &errOut)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")

	if out.String() != "d\ni\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if errOut.String() != "w\n" {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestConsole_WithComponent(t *testing.T) {
	var out bytes.Buffer
	l := NewConsole(LevelInfo, &out, &out)
	l.WithComponent("batch").Info("copied %d/%d", 2, 3)
	l.Info("plain")

	want := "[batch] copied 2/3\nplain\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestConsole_Quiet(t *testing.T) {
	var out bytes.Buffer
	l := NewConsole(LevelQuiet, &out, &out)
	l.Error("boom")
	if out.Len() != 0 {
		t.Errorf("quiet logger wrote %q", out.String())
	}
}

func TestNoop(t *testing.T) {
	var l Logger = NewNoop()
	l.Info("nothing")
	if l.WithComponent("x") != l {
		t.Error("Noop.WithComponent returned a different logger")
	}
}
