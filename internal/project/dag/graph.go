package dag

import (
	"fmt"
	"slices"
	"strings"

	"tcab/internal/diag"
	"tcab/internal/project"
)

type Graph struct {
	Edges   [][]ModuleID // Edges[from] = []to
	Indeg   []int        // входящие степени для Kahn (учитывает только присутствующие модули)
	Present []bool       // признак, что модуль реально загружен (а не только импортируется)
}

type ModuleSlot struct {
	Meta    project.ModuleMeta
	Present bool
}

// BuildGraph строит граф импортов. Само-импорт и ссылки на незагруженные модули
// не дают рёбер и сообщаются предупреждениями: резолвер уже пропустил их.
func BuildGraph(idx ModuleIndex, metas []project.ModuleMeta, r diag.Reporter) (Graph, []ModuleSlot) {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ModuleID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	slots := make([]ModuleSlot, nodeCount)
	for i, name := range idx.IDToName {
		slots[i].Meta.Path = name
	}

	for _, meta := range metas {
		if meta.Path == "" {
			continue
		}
		id, ok := idx.NameToID[meta.Path]
		if !ok {
			// не должно происходить, индекс строится на тех же метаданных
			continue
		}
		slot := &slots[int(id)]
		if slot.Present {
			// резолвер посещает каждый путь один раз
			continue
		}
		slot.Meta = meta
		slot.Present = true
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present || len(slot.Meta.Imports) == 0 {
			continue
		}
		seen := make(map[ModuleID]struct{}, len(slot.Meta.Imports))
		for _, dep := range slot.Meta.Imports {
			if dep.Path == "" {
				continue
			}
			toID := idx.NameToID[dep.Path]
			if ModuleID(from) == toID {
				diag.ReportWarning(r, diag.ImpSelfImport, dep.Token,
					fmt.Sprintf("module %q imports itself", slot.Meta.Path)).
					WithHint("The import resolves to nothing; remove it.").
					Emit()
				continue
			}
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}

			g.Edges[from] = append(g.Edges[from], toID)
			if g.Present[int(toID)] {
				g.Indeg[int(toID)]++
			} else {
				diag.ReportWarning(r, diag.ImpMissingModule, dep.Token,
					fmt.Sprintf("module %q imports module %q that was never loaded", slot.Meta.Path, dep.Path)).
					Emit()
			}
		}
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}

	return g, slots
}

// Build is BuildIndex followed by BuildGraph.
func Build(metas []project.ModuleMeta, r diag.Reporter) (ModuleIndex, Graph, []ModuleSlot) {
	idx := BuildIndex(metas)
	g, slots := BuildGraph(idx, metas, r)
	return idx, g, slots
}

// ReportCycles warns once per module that sits on an import cycle. The first
// import of that module pointing into the cycle anchors the warning.
func ReportCycles(idx ModuleIndex, slots []ModuleSlot, topo *Topo, r diag.Reporter) {
	if topo == nil || !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	summary := strings.Join(idx.Names(topo.Cycles), " -> ")
	onCycle := make(map[string]struct{}, len(topo.Cycles))
	for _, id := range topo.Cycles {
		onCycle[idx.IDToName[int(id)]] = struct{}{}
	}

	for _, id := range topo.Cycles {
		slot := slots[int(id)]
		if !slot.Present {
			continue
		}
		var anchor *project.ImportMeta
		for i := range slot.Meta.Imports {
			if _, ok := onCycle[slot.Meta.Imports[i].Path]; ok {
				anchor = &slot.Meta.Imports[i]
				break
			}
		}
		if anchor == nil {
			continue
		}
		msg := fmt.Sprintf("module %q participates in an import cycle: %s", slot.Meta.Path, summary)
		diag.ReportWarning(r, diag.ImpCycle, anchor.Token, msg).
			WithHint("Each module is included once; the back edge contributes no tokens.").
			Emit()
	}
}
