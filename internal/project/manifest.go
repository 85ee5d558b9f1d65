package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in tcab.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrUnsupportedDefine indicates a [defines] value that is not bool, integer, float or string.
	ErrUnsupportedDefine = errors.New("unsupported [defines] value")
)

// Manifest is the decoded tcab.toml of a project.
type Manifest struct {
	Path     string // absolute path to tcab.toml
	Root     string // directory of tcab.toml
	Name     string
	Main     string // entry module, relative to Root
	FastMath bool
	Defines  map[string]any
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Build struct {
		Main     string `toml:"main"`
		FastMath bool   `toml:"fast_math"`
	} `toml:"build"`
	Defines map[string]any `toml:"defines"`
}

// LoadManifest parses tcab.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	m := &Manifest{
		Path:     abs,
		Root:     filepath.Dir(abs),
		Name:     name,
		Main:     strings.TrimSpace(cfg.Build.Main),
		FastMath: cfg.Build.FastMath,
		Defines:  cfg.Defines,
	}
	if _, err := m.DefineStrings(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadNearestManifest finds tcab.toml above startDir and loads it.
// ok is false when there is no manifest.
func LoadNearestManifest(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// DefineStrings renders [defines] as "name=value" definitions sorted by name.
// Strings are quoted so they infer as String.
func (m *Manifest) DefineStrings() ([]string, error) {
	if m == nil || len(m.Defines) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(m.Defines))
	for name := range m.Defines {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		value, err := defineValue(m.Defines[name])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, name)
		}
		out = append(out, name+"="+value)
	}
	return out, nil
}

func defineValue(v any) (string, error) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s, nil
	case string:
		return strconv.Quote(x), nil
	}
	return "", fmt.Errorf("%w (%T)", ErrUnsupportedDefine, v)
}
