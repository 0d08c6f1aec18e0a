package main

import (
	"io"
	"os"
	"path/filepath"
)

// tuiLogOutput returns where logs go while the TUI owns the screen:
// ~/.collector/collector.log, or nowhere if it cannot be opened.
func tuiLogOutput() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard, func() {}
	}
	dir := filepath.Join(home, ".collector")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "collector.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
