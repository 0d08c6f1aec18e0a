package levels_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	_ "github.com/vovakirdan/maze-collector/internal/collector"
	_ "github.com/vovakirdan/maze-collector/internal/goal"
	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/levels/formats"
	"github.com/vovakirdan/maze-collector/internal/maze"
)

const validLevel = `id: t01
name: Test Row
type: collector
ideal: 5
min_collected: 2
start_dir: east
rows:
  - "#####"
  - "#S3.#"
  - "#####"
programs:
  grab:
    blocks:
      - move_forward
      - collect
`

func writeLevels(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBundledLevels(t *testing.T) {
	ids, err := levels.NewBundledLoader().ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	want := []string{"c01", "c02", "g01"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("bundled ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderLoadAllSkipsInvalid(t *testing.T) {
	dir := writeLevels(t, map[string]string{
		"t01.yaml":        validLevel,
		"nested/t02.yml":  "id: t02\ntype: goal\nideal: 1\nrows: [\"S.F\"]\n",
		"broken.yaml":     "id: [",
		"no_start.yaml":   "id: t03\ntype: goal\nideal: 1\nrows: [\"..F\"]\n",
		"notes.txt":       "not a level",
		"bad_program.yml": "id: t04\ntype: goal\nideal: 1\nrows: [\"S\"]\nprograms:\n  p:\n    blocks: [fly]\n",
	})

	lvls, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	var ids []string
	for _, l := range lvls {
		ids = append(ids, l.ID)
	}
	if diff := cmp.Diff([]string{"t01", "t02"}, ids); diff != "" {
		t.Errorf("loaded ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	dir := writeLevels(t, map[string]string{"t01.yaml": validLevel})
	loader := levels.NewLoader(dir)

	lvl, err := loader.LoadByID("t01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Name != "Test Row" || lvl.Type != "collector" || lvl.Ideal != 5 {
		t.Errorf("unexpected header: %+v", lvl)
	}
	if lvl.FilePath != filepath.Join(dir, "t01.yaml") {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}

	cfg := lvl.Config()
	if diff := cmp.Diff(level.Config{BlockLimit: 5, MinCollected: intPtr(2)}, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}

	if lvl.Grid.Start != maze.C(1, 1) || lvl.Grid.StartDir != maze.DirEast {
		t.Errorf("start = %v facing %v", lvl.Grid.Start, lvl.Grid.StartDir)
	}
	if got := lvl.Grid.At(maze.C(2, 1)); !got.IsCollectible() || got.OriginalValue() != 3 {
		t.Errorf("pile = %+v", got)
	}

	p, err := lvl.Program("grab")
	if err != nil {
		t.Fatalf("Program: %v", err)
	}
	if p.Name != "grab" || p.BlockCount() != 2 {
		t.Errorf("program = %+v", p)
	}
	if _, err := lvl.Program("missing"); err == nil {
		t.Error("expected error for unknown program")
	}

	_, err = loader.LoadByID("nope")
	if !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoaderLoadByIDReportsBrokenFile(t *testing.T) {
	dir := writeLevels(t, map[string]string{
		"t01.yaml":             validLevel,
		"t09_broken_maze.yaml": "id: t09\ntype: goal\nideal: 1\nrows: [\"..F\"]\n",
	})
	loader := levels.NewLoader(dir)

	_, err := loader.LoadByID("t09")
	if errors.Is(err, levels.ErrNotFound) {
		t.Fatalf("broken file reported as missing: %v", err)
	}
	var verr formats.ValidationError
	if !errors.As(err, &verr) || verr.Code != "INVALID_START" {
		t.Errorf("expected INVALID_START validation error, got %v", err)
	}

	if _, err := loader.LoadByID("t0"); !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("prefix of another id should stay not found, got %v", err)
	}
	if _, err := loader.LoadByID("t01"); err != nil {
		t.Errorf("valid level failed to load: %v", err)
	}
}

func TestLevelConfigIsCopied(t *testing.T) {
	dir := writeLevels(t, map[string]string{"t01.yaml": validLevel})
	lvl, err := levels.NewLoader(dir).LoadByID("t01")
	if err != nil {
		t.Fatal(err)
	}

	cfg := lvl.Config()
	*cfg.MinCollected = 99
	if *lvl.MinCollected != 2 {
		t.Error("mutating a Config must not change the level")
	}
}

func TestNewGridIsIndependent(t *testing.T) {
	lvl, err := levels.NewBundledLoader().LoadByID("c01")
	if err != nil {
		t.Fatal(err)
	}

	g := lvl.NewGrid()
	g.Collect(maze.C(2, 1))
	if lvl.Grid.At(maze.C(2, 1)).CurrentValue() != 2 {
		t.Error("session grid shares cells with the level template")
	}
}

func intPtr(v int) *int { return &v }
