package driver

import (
	"encoding/json"
	"fmt"

	"tcab/internal/diag"
	"tcab/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimings adds the timing report of res to its bag as an info
// diagnostic carrying the JSON payload in a note.
func AppendTimings(res *Result) {
	if res == nil || res.Timing == nil {
		return
	}
	appendTimingDiagnostic(res.Bag, timingPayload{
		Kind:    "compile",
		Path:    res.Path,
		TotalMS: res.Timing.TotalMS,
		Phases:  res.Timing.Phases,
	})
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, nil, msg).WithNote(nil, string(data))
	bag.Force(entry)
}
