package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/maze-collector/internal/level"
	"github.com/vovakirdan/maze-collector/internal/maze"
)

type stubVariant struct {
	level.Variant
	env level.Env
}

func (s stubVariant) Kind() string { return "stub" }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub", func(env level.Env) level.Variant {
		return stubVariant{env: env}
	})

	if !Exists("stub") {
		t.Fatal("stub should be registered")
	}

	found := false
	for _, k := range Kinds() {
		if k == "stub" {
			found = true
		}
	}
	if !found {
		t.Errorf("Kinds() = %v, missing stub", Kinds())
	}

	grid := maze.NewGrid(2, 2)
	v, err := Create("stub", level.Env{Grid: grid, Config: level.Config{BlockLimit: 4}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sv, ok := v.(stubVariant)
	if !ok {
		t.Fatalf("Create returned %T", v)
	}
	if sv.env.Config.BlockLimit != 4 || sv.env.Grid != grid {
		t.Error("factory did not receive the env")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-kind", level.Env{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if Exists("no-such-kind") {
		t.Error("Exists should be false for unknown kinds")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func(level.Env) level.Variant { return stubVariant{} })

	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register("dup", func(level.Env) level.Variant { return stubVariant{} })
}
