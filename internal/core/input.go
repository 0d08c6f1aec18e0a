package core

// Action represents a semantic UI action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // Up, k - move cursor up
	ActionDown               // Down, j - move cursor down
	ActionConfirm            // Enter - select a level
	ActionRun                // Space, Enter - run the selected program
	ActionSkip               // s - jump to the end of the replay
	ActionReset              // r - put the board back to its start state
	ActionNextProgram        // Tab - select the next sample program
	ActionPrevProgram        // Shift+Tab - select the previous sample program
	ActionHistory            // h - show run history
	ActionBack               // b, Esc - go back
	ActionQuit               // q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionRun:
		return "Run"
	case ActionSkip:
		return "Skip"
	case ActionReset:
		return "Reset"
	case ActionNextProgram:
		return "NextProgram"
	case ActionPrevProgram:
		return "PrevProgram"
	case ActionHistory:
		return "History"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
