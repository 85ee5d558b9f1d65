package driver

import (
	"tcab/internal/diag"
	"tcab/internal/project"
	"tcab/internal/project/dag"
)

// ComputeModuleHashes вычисляет ModuleHash по обратному порядку топосортировки.
// Для циклического графа намеренно ничего не делает (оставляет нули).
func ComputeModuleHashes(g dag.Graph, slots []dag.ModuleSlot, topo *dag.Topo) {
	if topo == nil || topo.Cyclic {
		return
	}
	for i := len(topo.Order) - 1; i >= 0; i-- {
		id := topo.Order[i]
		slot := &slots[int(id)]
		if !slot.Present {
			continue
		}
		deps := make([]project.Digest, 0, len(g.Edges[int(id)]))
		for _, to := range g.Edges[int(id)] {
			if !g.Present[int(to)] {
				continue
			}
			deps = append(deps, slots[int(to)].Meta.ModuleHash)
		}
		slot.Meta.ModuleHash = project.Combine(slot.Meta.ContentHash, deps...)
	}
}

// ImportGraph is the module graph of one compilation.
type ImportGraph struct {
	Index dag.ModuleIndex
	Graph dag.Graph
	Slots []dag.ModuleSlot
	Topo  *dag.Topo
}

// BuildImportGraph orders the modules visited by a compilation, reports
// cycles and self-imports as warnings to r and fills module hashes.
func BuildImportGraph(modules []project.ModuleMeta, r diag.Reporter) *ImportGraph {
	idx, g, slots := dag.Build(modules, r)
	topo := dag.Toposort(g)
	dag.ReportCycles(idx, slots, topo, r)
	ComputeModuleHashes(g, slots, topo)
	return &ImportGraph{Index: idx, Graph: g, Slots: slots, Topo: topo}
}

// OnCycle reports whether the module sits on (or behind) an import cycle.
func (ig *ImportGraph) OnCycle(id dag.ModuleID) bool {
	for _, c := range ig.Topo.Cycles {
		if c == id {
			return true
		}
	}
	return false
}
