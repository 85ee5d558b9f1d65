package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"tcab/internal/diag"
	"tcab/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string                 `json:"ruleId"`
	Level            string                 `json:"level"`
	Message          sarifMessage           `json:"message"`
	Locations        []sarifLocation        `json:"locations,omitempty"`
	RelatedLocations []sarifRelatedLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifRelatedLocation struct {
	ID               int                   `json:"id"`
	Message          sarifMessage          `json:"message"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine uint32 `json:"startLine"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifPhysical(loc LocationJSON) sarifPhysicalLocation {
	pl := sarifPhysicalLocation{ArtifactLocation: sarifArtifact{URI: loc.File}}
	if loc.Line > 0 {
		pl.Region = &sarifRegion{StartLine: loc.Line}
	}
	return pl
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeRelative, IncludeNotes: true})

	rules := make(map[string]sarifRule)
	results := make([]sarifResult, 0, len(out.Diagnostics))
	for i, d := range out.Diagnostics {
		code := bag.Items()[i].Code
		rules[d.Code] = sarifRule{
			ID:               d.Code,
			Name:             code.Title(),
			ShortDescription: sarifMessage{Text: code.Title()},
		}
		msg := d.Message
		if d.Hint != "" {
			msg += "\n" + d.Hint
		}
		res := sarifResult{
			RuleID:    d.Code,
			Level:     sarifLevel(bag.Items()[i].Severity),
			Message:   sarifMessage{Text: msg},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical(d.Location)}},
		}
		for j, n := range d.Notes {
			res.RelatedLocations = append(res.RelatedLocations, sarifRelatedLocation{
				ID:               j + 1,
				Message:          sarifMessage{Text: n.Message},
				PhysicalLocation: sarifPhysical(n.Location),
			})
		}
		results = append(results, res)
	}

	ruleList := make([]sarifRule, 0, len(rules))
	for _, r := range rules {
		ruleList = append(ruleList, r)
	}
	sort.Slice(ruleList, func(i, j int) bool { return ruleList[i].ID < ruleList[j].ID })

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
			Rules:   ruleList,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: bag == nil || !bag.HasErrors(),
		}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	})
}
