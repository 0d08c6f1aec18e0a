// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/program"
	"github.com/vovakirdan/maze-collector/internal/registry"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError contains details about a level that failed validation.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID           string                     `yaml:"id" validate:"required"`
	Name         string                     `yaml:"name"`
	Type         string                     `yaml:"type" validate:"required"`
	Ideal        int                        `yaml:"ideal" validate:"min=1"`
	MinCollected *int                       `yaml:"min_collected,omitempty" validate:"omitnil,min=0"`
	StartDir     string                     `yaml:"start_dir,omitempty"`
	Rows         []string                   `yaml:"rows" validate:"required,min=1"`
	Programs     map[string]program.Program `yaml:"programs,omitempty"`
	Metadata     map[string]string          `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID           string
	Name         string
	Type         string
	Ideal        int
	MinCollected *int
	Grid         *maze.Grid
	Programs     map[string]program.Program
	Metadata     map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if err := validate.Struct(yl); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Level{}, ValidationError{
				Code:    "INVALID_FIELD",
				Message: fmt.Sprintf("%s failed %q", verrs[0].Field(), verrs[0].Tag()),
			}
		}
		return Level{}, err
	}

	if !registry.Exists(yl.Type) {
		return Level{}, ValidationError{
			Code:    "INVALID_TYPE",
			Message: fmt.Sprintf("unknown level type %q (have %s)", yl.Type, strings.Join(registry.Kinds(), ", ")),
		}
	}

	startDir, err := maze.ParseDir(yl.StartDir)
	if err != nil {
		return Level{}, ValidationError{Code: "INVALID_DIRECTION", Message: err.Error()}
	}

	grid, err := ParseRows(yl.Rows)
	if err != nil {
		return Level{}, err
	}
	grid.StartDir = startDir

	programs := make(map[string]program.Program, len(yl.Programs))
	for _, name := range sortedKeys(yl.Programs) {
		p := yl.Programs[name]
		if p.Name == "" {
			p.Name = name
		}
		if err := program.Validate(p); err != nil {
			return Level{}, ValidationError{
				Code:    "INVALID_PROGRAM",
				Message: fmt.Sprintf("program %q: %v", name, err),
			}
		}
		programs[name] = p
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:           yl.ID,
		Name:         name,
		Type:         yl.Type,
		Ideal:        yl.Ideal,
		MinCollected: yl.MinCollected,
		Grid:         grid,
		Programs:     programs,
		Metadata:     yl.Metadata,
	}, nil
}

// ParseRows builds a grid from text rows.
//
//	#     wall
//	. ' ' open floor
//	S     start (open)
//	F     finish (open)
//	1-9   collectible quantity
//
// Short rows are padded with walls.
func ParseRows(rows []string) (*maze.Grid, error) {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	g := maze.NewGrid(w, len(rows))

	starts := 0
	for y, row := range rows {
		for x, ch := range []byte(row) {
			c := maze.C(x, y)
			switch {
			case ch == '#':
				g.Set(c, maze.Wall())
			case ch == '.' || ch == ' ':
				g.Set(c, maze.Open())
			case ch == 'S':
				g.Set(c, maze.Open())
				g.Start = c
				starts++
			case ch == 'F':
				g.Set(c, maze.Open())
				finish := c
				g.Finish = &finish
			case ch >= '1' && ch <= '9':
				g.Set(c, maze.CollectibleCell(float64(ch-'0')))
			default:
				return nil, ValidationError{
					Code:    "INVALID_TILE",
					Message: fmt.Sprintf("unknown tile %q at %s", ch, c),
				}
			}
		}
	}

	if starts != 1 {
		return nil, ValidationError{
			Code:    "INVALID_START",
			Message: fmt.Sprintf("expected exactly one start tile, found %d", starts),
		}
	}
	return g, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
