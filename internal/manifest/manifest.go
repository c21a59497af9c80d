// Package manifest loads batch descriptions for the aggregation tables.
//
// A manifest is a TOML file:
//
//	[models]
//	reference = "data/manual_baseline/plantuml_agentic.puml"
//	runs = "data/llm-mas/run_*"
//	file = "plantuml_agentic.puml"
//
//	[terms]
//	baseline = "data/manual_baseline"
//	runs = "data/llm-mas/run_*"
//	files = ["terms.csv", "scored_terms.csv"]
//	column = "term"
//
// Relative paths are resolved against the manifest's directory.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid manifest")

// Models describes a reference diagram and the runs scored against it.
type Models struct {
	Reference string `toml:"reference"`
	Runs      string `toml:"runs"`
	File      string `toml:"file"`
}

// Terms describes baseline term files and the runs scored against them.
type Terms struct {
	Baseline string   `toml:"baseline"`
	Runs     string   `toml:"runs"`
	Files    []string `toml:"files"`
	Column   string   `toml:"column"`
}

// Manifest is a decoded manifest file. Either section may be absent.
type Manifest struct {
	Models *Models `toml:"models"`
	Terms  *Terms  `toml:"terms"`
}

// Load decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("loading manifest %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.resolve(filepath.Dir(path))
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Models == nil && m.Terms == nil {
		return fmt.Errorf("%w: needs a [models] or [terms] section", ErrInvalid)
	}
	if s := m.Models; s != nil {
		switch {
		case s.Reference == "":
			return fmt.Errorf("%w: models.reference is required", ErrInvalid)
		case s.Runs == "":
			return fmt.Errorf("%w: models.runs is required", ErrInvalid)
		case s.File == "":
			return fmt.Errorf("%w: models.file is required", ErrInvalid)
		}
	}
	if s := m.Terms; s != nil {
		switch {
		case s.Baseline == "":
			return fmt.Errorf("%w: terms.baseline is required", ErrInvalid)
		case s.Runs == "":
			return fmt.Errorf("%w: terms.runs is required", ErrInvalid)
		case len(s.Files) == 0:
			return fmt.Errorf("%w: terms.files must list at least one file", ErrInvalid)
		}
	}
	return nil
}

func (m *Manifest) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	if s := m.Models; s != nil {
		s.Reference = abs(s.Reference)
		s.Runs = abs(s.Runs)
	}
	if s := m.Terms; s != nil {
		s.Baseline = abs(s.Baseline)
		s.Runs = abs(s.Runs)
	}
}

// Runs expands a run glob to the matching directories in sorted order.
func Runs(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("run pattern %q: %w", pattern, err)
	}
	var dirs []string
	for _, p := range matches {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ModelPaths lists the model file of every run matched by s.Runs.
func (s *Models) ModelPaths() ([]string, error) {
	dirs, err := Runs(s.Runs)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(dirs))
	for i, d := range dirs {
		paths[i] = filepath.Join(d, s.File)
	}
	return paths, nil
}
