package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"tcab/internal/buildpipeline"
)

func TestApplyEventTracksFiles(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("check", []string{"a.tcab", "b.tcab"}, events).(*progressModel)

	m.applyEvent(buildpipeline.Event{File: "a.tcab", Stage: buildpipeline.StageImports, Status: buildpipeline.StatusWorking})
	m.applyEvent(buildpipeline.Event{File: "b.tcab", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusError})
	m.applyEvent(buildpipeline.Event{File: "unknown.tcab", Status: buildpipeline.StatusDone})

	if got := m.items[0].status; got != "importing" {
		t.Fatalf("a.tcab status = %q", got)
	}
	if got := m.items[1].status; got != "error" {
		t.Fatalf("b.tcab status = %q", got)
	}
	view := m.View()
	if !strings.Contains(view, "a.tcab") || !strings.Contains(view, "importing") {
		t.Fatalf("view misses file state:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("lib/very/long/path.tcab", 10); got != "lib/ver..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("каталог/длинный.tcab", 12); runewidth.StringWidth(got) != 12 {
		t.Fatalf("truncate = %q, width %d", got, runewidth.StringWidth(got))
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
