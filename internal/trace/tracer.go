package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives trace events. Implementations are safe for concurrent use:
// CheckDir compiles entries in parallel against one tracer.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode is the --trace-mode value.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // write each event immediately
	ModeRing                          // keep the last RingSize events
	ModeBoth
)

var modeNames = map[StorageMode]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode parses a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	name := strings.ToLower(s)
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config describes the tracer built by New from the CLI flags.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format // FormatAuto: NDJSON for .ndjson/.json paths, text otherwise
	// Output overrides OutputPath; the caller keeps ownership of it.
	Output io.Writer
	// OutputPath is a file created by New, or "" / "-" for stderr.
	OutputPath string
	RingSize   int
}

// New builds the tracer for cfg. Level off yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	stream, err := openStream(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return &tee{stream: stream, ring: NewRingTracer(cfg.RingSize, cfg.Level)}, nil
}

func openStream(cfg Config) (*StreamTracer, error) {
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if ext := filepath.Ext(cfg.OutputPath); ext == ".ndjson" || ext == ".json" {
			format = FormatNDJSON
		}
	}

	switch {
	case cfg.Output != nil:
		return NewStreamTracer(cfg.Output, cfg.Level, format), nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return NewStreamTracer(os.Stderr, cfg.Level, format), nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	st := NewStreamTracer(f, cfg.Level, format)
	st.closer = f
	return st, nil
}
