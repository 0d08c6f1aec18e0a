// Package levels provides level loading functionality.
// This package depends on maze and program but neither depends on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/levels/formats"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/program"
)

//go:embed bundled/*.yaml
var bundledFS embed.FS

// ErrNotFound is returned by LoadByID for unknown level ids.
var ErrNotFound = errors.New("levels: level not found")

// Level represents a complete level definition.
type Level struct {
	ID           string
	Name         string
	Type         string
	Ideal        int
	MinCollected *int
	Grid         *maze.Grid // pristine template; never handed to a run
	Programs     map[string]program.Program
	Metadata     map[string]string
	FilePath     string
}

// Config returns the immutable level configuration.
func (l *Level) Config() level.Config {
	cfg := level.Config{BlockLimit: l.Ideal}
	if l.MinCollected != nil {
		v := *l.MinCollected
		cfg.MinCollected = &v
	}
	return cfg
}

// NewGrid returns a fresh copy of the level's grid for a play session.
func (l *Level) NewGrid() *maze.Grid {
	return l.Grid.Clone()
}

// ProgramNames returns the names of bundled sample programs, sorted.
func (l *Level) ProgramNames() []string {
	names := make([]string, 0, len(l.Programs))
	for name := range l.Programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Program returns a bundled sample program by name.
func (l *Level) Program(name string) (program.Program, error) {
	p, ok := l.Programs[name]
	if !ok {
		return program.Program{}, fmt.Errorf("levels: level %s has no program %q (have %s)",
			l.ID, name, strings.Join(l.ProgramNames(), ", "))
	}
	return p, nil
}

// Loader handles loading levels from a file tree.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// NewBundledLoader creates a loader over the levels compiled into the binary.
func NewBundledLoader() *Loader {
	sub, err := fs.Sub(bundledFS, "bundled")
	if err != nil {
		panic(err)
	}
	return &Loader{fsys: sub, root: "bundled"}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file. p is relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:           parsed.ID,
		Name:         parsed.Name,
		Type:         parsed.Type,
		Ideal:        parsed.Ideal,
		MinCollected: parsed.MinCollected,
		Grid:         parsed.Grid,
		Programs:     parsed.Programs,
		Metadata:     parsed.Metadata,
		FilePath:     path.Join(l.root, p),
	}, nil
}

// LoadByID loads a specific level by ID.
// When no valid file declares id but a file named after it ("c01.yaml",
// "c01_first_harvest.yaml") fails to parse, that error is returned
// instead of ErrNotFound.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	if err := l.brokenFileFor(id); err != nil {
		return Level{}, err
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// brokenFileFor returns the load error of the first file named after id.
func (l *Loader) brokenFileFor(id string) error {
	var loadErr error
	_ = fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || loadErr != nil {
			return nil
		}
		ext := path.Ext(p)
		if !isSupportedExtension(strings.ToLower(ext)) {
			return nil
		}
		stem := strings.TrimSuffix(path.Base(p), ext)
		if stem != id && !strings.HasPrefix(stem, id+"_") {
			return nil
		}
		if _, err := l.LoadFile(p); err != nil {
			loadErr = err
		}
		return nil
	})
	return loadErr
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
