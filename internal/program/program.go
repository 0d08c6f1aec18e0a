// Package program models the player's block program: a tree of blocks that
// the engine interprets against the maze.
package program

import (
	"strconv"
	"strings"
)

// Op is a block type.
type Op string

const (
	OpMoveForward    Op = "move_forward"
	OpTurnLeft       Op = "turn_left"
	OpTurnRight      Op = "turn_right"
	OpCollect        Op = "collect"
	OpRepeat         Op = "repeat"
	OpIfCollectible  Op = "if_collectible"
	OpWhilePathAhead Op = "while_path_ahead"
)

// IsContainer reports whether the block holds a nested body.
func (o Op) IsContainer() bool {
	switch o {
	case OpRepeat, OpIfCollectible, OpWhilePathAhead:
		return true
	}
	return false
}

// Block is one node in the program tree.
type Block struct {
	Op    Op      `yaml:"op" validate:"required,oneof=move_forward turn_left turn_right collect repeat if_collectible while_path_ahead"`
	Times int     `yaml:"times,omitempty" validate:"min=0,max=10000"`
	Body  []Block `yaml:"body,omitempty" validate:"dive"`
}

// Program is a named list of top-level blocks.
type Program struct {
	Name   string  `yaml:"name"`
	Blocks []Block `yaml:"blocks" validate:"dive"`
}

// BlockCount counts every block including nested ones. This is the number
// a level compares against its block limit.
func (p Program) BlockCount() int {
	return countBlocks(p.Blocks)
}

func countBlocks(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		n += 1 + countBlocks(b.Body)
	}
	return n
}

// String renders the program as indented pseudo-code.
func (p Program) String() string {
	var sb strings.Builder
	writeBlocks(&sb, p.Blocks, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func writeBlocks(sb *strings.Builder, blocks []Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, b := range blocks {
		sb.WriteString(indent)
		switch b.Op {
		case OpRepeat:
			sb.WriteString("repeat ")
			sb.WriteString(strconv.Itoa(b.Times))
			sb.WriteString(" times:\n")
		case OpIfCollectible:
			sb.WriteString("if collectible:\n")
		case OpWhilePathAhead:
			sb.WriteString("while path ahead:\n")
		default:
			sb.WriteString(strings.ReplaceAll(string(b.Op), "_", " "))
			sb.WriteString("\n")
		}
		if b.Op.IsContainer() {
			writeBlocks(sb, b.Body, depth+1)
		}
	}
}
