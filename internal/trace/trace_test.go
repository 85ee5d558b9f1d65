package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeModule) {
		t.Fatalf("phase level must skip module events")
	}
	if !LevelPhase.ShouldEmit(ScopePass) || !LevelDetail.ShouldEmit(ScopeModule) {
		t.Fatalf("pass events at phase, module events at detail")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatalf("off emits nothing")
	}
	if !LevelError.ShouldEmit(ScopeDriver) || LevelError.ShouldEmit(ScopePass) {
		t.Fatalf("error level keeps compile spans only")
	}
	if LevelDetail.ShouldEmit(ScopeCache) || !LevelDebug.ShouldEmit(ScopeCache) {
		t.Fatalf("cache points only at debug")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(detail) = %v, %v", l, err)
	}
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(DEBUG) = %v, %v", l, err)
	}
	if m, err := ParseMode("Both"); err != nil || m != ModeBoth || m.String() != "both" {
		t.Fatalf("ParseMode(Both) = %v, %v", m, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel must reject unknown levels")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestChildSpansNestThroughContext(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Child(ctx, ScopePass, "imports")
	_, inner := Child(ctx, ScopeModule, "module:./a.tcab")
	inner.End("3 tokens")
	outer.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string `json:"kind"`
		Name     string `json:"name"`
		SpanID   uint64 `json:"span_id"`
		ParentID uint64 `json:"parent_id"`
		Detail   string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("bad NDJSON %q: %v", lines[1], err)
	}
	if ev.Name != "module:./a.tcab" || ev.ParentID != outer.ID() {
		t.Fatalf("inner span must be parented to outer, got %+v", ev)
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Detail != "3 tokens" {
		t.Fatalf("unexpected end event %+v", ev)
	}
}

func TestNopTracerIsSilent(t *testing.T) {
	ctx, sp := Child(context.Background(), ScopePass, "lex")
	if sp.ID() != 0 {
		t.Fatalf("nop span must have no id")
	}
	if CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("nop span must not be stored in the context")
	}
	if d := sp.End(""); d != 0 {
		t.Fatalf("nop span has no duration")
	}
}

func TestRingTracerKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeModule, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\u2022 c") {
		t.Fatalf("text dump missing point event:\n%s", buf.String())
	}
}

func TestNewWithLevelOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestFindRingInBothMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ring, ok := FindRing(tr)
	if !ok || ring == nil {
		t.Fatalf("ring not found in %T", tr)
	}
	Point(tr, ScopePass, "lex", "", 0)
	if len(ring.Snapshot()) != 1 {
		t.Fatalf("ring missed the event")
	}
	if _, ok := FindRing(Nop); ok {
		t.Fatalf("nop has no ring")
	}
}

func TestStreamClosesOnlyItsOwnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.ndjson")
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	_, sp := Child(WithTracer(context.Background(), tr), ScopeDriver, "compile")
	sp.End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !json.Valid([]byte(lines[0])) {
		t.Fatalf("want 2 NDJSON events, got:\n%s", data)
	}

	var buf bytes.Buffer
	own := NewStreamTracer(&buf, LevelPhase, FormatText)
	if err := own.Close(); err != nil {
		t.Fatalf("closing a caller-owned writer: %v", err)
	}
}
