package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Every level admits one more Scope than
// the previous one.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // compile spans only: the ring dump names the failing entry
	LevelPhase        // + pipeline stages
	LevelDetail       // + one span per module (resolve, preprocess)
	LevelDebug        // + module cache hits
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(s)
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope != 0 && uint8(scope) <= uint8(l)
}
