package recon

import "fmt"

// State tracks a run through its lifecycle. Transitions are strictly
// forward except Failed, which is reachable from every state.
type State int

const (
	StateLoading State = iota
	StateResolving
	StateNormalizing
	StateClassifying
	StateSplitting
	StateTagging
	StatePublishing
	StateDone
	StateFailed
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateResolving:
		return "Resolving"
	case StateNormalizing:
		return "Normalizing"
	case StateClassifying:
		return "Classifying"
	case StateSplitting:
		return "Splitting"
	case StateTagging:
		return "Tagging"
	case StatePublishing:
		return "Publishing"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
