package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota // no action
	ActionLane0                 // leftmost lane tap
	ActionLane1                 // second lane tap
	ActionLane2                 // third lane tap
	ActionLane3                 // rightmost lane tap
	ActionPause                 // P, Space - pause/resume
	ActionConfirm               // Enter - confirm selection in menu
	ActionBack                  // Esc, B - leave the game
	ActionRestart               // R - replay the same level
	ActionMute                  // M - toggle audio cues
	ActionQuit                  // Ctrl+C - exit the program
)

// LaneAction returns the tap action for a lane index.
// Out-of-range lanes map to ActionNone.
func LaneAction(lane int) Action {
	if lane < 0 || lane > 3 {
		return ActionNone
	}
	return ActionLane0 + Action(lane)
}

// Lane returns the lane index of a tap action.
func (a Action) Lane() (int, bool) {
	if a >= ActionLane0 && a <= ActionLane3 {
		return int(a - ActionLane0), true
	}
	return 0, false
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLane0:
		return "Lane1"
	case ActionLane1:
		return "Lane2"
	case ActionLane2:
		return "Lane3"
	case ActionLane3:
		return "Lane4"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
