package core

// Action is a semantic player intent, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up; restarts once the run is over
	ActionRestart        // R
	ActionHelp           // ?
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
