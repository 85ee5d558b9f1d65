package buildpipeline

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestNormalizeProgressFiles(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "b.tcab"),
		filepath.Join(base, "lib", "a.tcab"),
		filepath.Join(base, "b.tcab"),
		"",
	}
	got := NormalizeProgressFiles(files, base)
	want := []string{"b.tcab", "lib/a.tcab"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeProgressFiles = %v, want %v", got, want)
	}
}

func TestEmitToFuncSink(t *testing.T) {
	var got []Event
	sink := FuncSink(func(e Event) { got = append(got, e) })
	EmitQueued(sink, []string{"a", "b"})
	Emit(sink, "a", StageCheck, StatusDone, nil, 0)
	Emit(nil, "a", StageCheck, StatusDone, nil, 0)
	if len(got) != 3 || got[2].Stage != StageCheck || got[0].Status != StatusQueued {
		t.Fatalf("unexpected events %+v", got)
	}
}

func TestTimingsAdd(t *testing.T) {
	var tm Timings
	tm.Add(StagePreprocess, 2)
	tm.Add(StagePreprocess, 3)
	tm.Set(StageCheck, 4)
	if tm.Duration(StagePreprocess) != 5 || !tm.Has(StageCheck) || tm.Has(StageTests) {
		t.Fatalf("unexpected timings %+v", tm)
	}
	if tm.Sum(Stages...) != 9 {
		t.Fatalf("Sum = %v", tm.Sum(Stages...))
	}
}
