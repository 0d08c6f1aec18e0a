package program

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseError describes a program that could not be read.
type ParseError struct {
	Path string // block path such as "blocks[2].body[0]", empty for file-level errors
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "program: " + e.Msg
	}
	return fmt.Sprintf("program: %s: %s", e.Path, e.Msg)
}

// UnmarshalYAML accepts either a bare op name ("collect") or a mapping
// ({op: repeat, times: 3, body: [...]}).
func (b *Block) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		b.Op = Op(node.Value)
		return nil
	}
	type plain Block
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*b = Block(p)
	return nil
}

// Parse decodes and validates a YAML program.
func Parse(data []byte) (Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Program{}, &ParseError{Msg: fmt.Sprintf("yaml: %v", err)}
	}
	if err := Validate(p); err != nil {
		return Program{}, err
	}
	return p, nil
}

// ParseFile reads and parses a program file.
func ParseFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Program{}, fmt.Errorf("program: reading %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Program{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks block names and container shapes.
func Validate(p Program) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ParseError{
				Path: fe.Namespace(),
				Msg:  fmt.Sprintf("invalid %s (%s=%v)", fe.Field(), fe.Tag(), fe.Value()),
			}
		}
		return &ParseError{Msg: err.Error()}
	}
	return checkShapes(p.Blocks, "blocks")
}

func checkShapes(blocks []Block, prefix string) error {
	for i, b := range blocks {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		if b.Op == OpRepeat && b.Times < 1 {
			return &ParseError{Path: path, Msg: "repeat needs times >= 1"}
		}
		if !b.Op.IsContainer() && len(b.Body) > 0 {
			return &ParseError{Path: path, Msg: fmt.Sprintf("%s cannot have a body", b.Op)}
		}
		if err := checkShapes(b.Body, path+".body"); err != nil {
			return err
		}
	}
	return nil
}
