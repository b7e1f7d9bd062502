package solverlog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captured(min Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := &Logger{min: min, out: log.New(&buf, "", 0)}
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := captured(Verbose)
	l.Debugf("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("expected Debugf below Verbose to be dropped, got %q", buf.String())
	}

	l.Verbosef("seed %d checked", 7)
	if !strings.Contains(buf.String(), "seed 7 checked") {
		t.Errorf("expected Verbosef to log, got %q", buf.String())
	}
}

func TestInfoAlwaysLogsAtDefaultLevel(t *testing.T) {
	l, buf := captured(Info)
	l.Infof("done")
	if !strings.Contains(buf.String(), "done") {
		t.Errorf("expected Infof to log, got %q", buf.String())
	}
	l.Debugf("noisy")
	l.Verbosef("also noisy")
	if strings.Contains(buf.String(), "noisy") {
		t.Errorf("expected sub-Info calls to be dropped at Info level, got %q", buf.String())
	}
}
