package driver

import (
	"tcab/internal/buildpipeline"
)

// Options configures one compilation.
type Options struct {
	// Defines are "name=value" build variable definitions; later ones win.
	Defines []string
	// FastMath and Verbose are passed through for later stages.
	FastMath bool
	Verbose  bool

	MaxDiagnostics int
	EnableTimings  bool

	// DiskCache, when set, stores preprocessed modules between runs.
	DiskCache *DiskCache
	// Cache shares preprocessed modules between compilations of one process.
	Cache *ModuleCache
	// Progress receives stage events for the entry file.
	Progress buildpipeline.ProgressSink
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}
