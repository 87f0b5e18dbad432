package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

type recordingPoster struct {
	tags    []string
	records []map[string]interface{}
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.tags = append(p.tags, tag)
	p.records = append(p.records, message.(Fields))
	return nil
}

func TestSlogJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlog(SlogConfig{Writer: &buf, Level: slog.LevelInfo, JSON: true})

	l.WithFields(Fields{"component": "test"}).Error("load failed", errors.New("boom"), Fields{"path": "x.csv"})
	l.Debug("dropped", nil)

	var rec map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected exactly one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "load failed" || rec["component"] != "test" || rec["path"] != "x.csv" {
		t.Errorf("unexpected record %v", rec)
	}
	if rec["err"] != "boom" {
		t.Errorf("error attribute: got %v", rec["err"])
	}
}

func TestSlogColorWritesSomething(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlog(SlogConfig{Writer: &buf, Level: slog.LevelDebug, Color: true})
	l.Debug("hello", Fields{"k": 1})
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Errorf("output %q missing message", buf.String())
	}
}

func TestFluentLevelsAndFields(t *testing.T) {
	p := &recordingPoster{}
	l, err := NewFluent(p, slog.LevelInfo)
	if err != nil {
		t.Fatal(err)
	}
	child := l.WithFields(Fields{"service_name": "carvalue"})
	child.Debug("skipped", nil)
	child.Info("started", Fields{"port": 8080})
	child.Error("failed", errors.New("boom"), nil)

	if len(p.tags) != 2 || p.tags[0] != "info" || p.tags[1] != "error" {
		t.Fatalf("unexpected tags %v", p.tags)
	}
	if p.records[0]["service_name"] != "carvalue" || p.records[0]["port"] != 8080 {
		t.Errorf("unexpected record %v", p.records[0])
	}
	if p.records[1]["error"] != "boom" {
		t.Errorf("error field: got %v", p.records[1]["error"])
	}
	if _, err := NewFluent(nil, slog.LevelInfo); err == nil {
		t.Error("expected error for nil client")
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := &recordingPoster{}, &recordingPoster{}
	la, _ := NewFluent(a, slog.LevelDebug)
	lb, _ := NewFluent(b, slog.LevelDebug)
	m, err := NewMulti(la, lb)
	if err != nil {
		t.Fatal(err)
	}
	m.WithFields(Fields{"trace_id": "t1"}).Warn("careful", nil)

	for name, p := range map[string]*recordingPoster{"a": a, "b": b} {
		if len(p.records) != 1 || p.records[0]["trace_id"] != "t1" {
			t.Errorf("logger %s: unexpected records %v", name, p.records)
		}
	}
	if _, err := NewMulti(); err == nil {
		t.Error("expected error for empty multi logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warning": slog.LevelWarn, "error": slog.LevelError,
	}
	for in, want := range tests {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, ok)
		}
	}
	if lvl, ok := ParseLevel("loud"); ok || lvl != slog.LevelInfo {
		t.Errorf("unknown level: got %v, %v", lvl, ok)
	}
}

func TestFromContext(t *testing.T) {
	if _, ok := FromContext(context.Background()).(nopLogger); !ok {
		t.Error("expected no-op logger for bare context")
	}
	p := &recordingPoster{}
	l, _ := NewFluent(p, slog.LevelDebug)
	FromContext(ContextWithLogger(context.Background(), l)).Info("hi", nil)
	if len(p.records) != 1 {
		t.Error("logger from context was not used")
	}
}
