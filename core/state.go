package core

// State is the engine's position in the per block pipeline.
type State int32

const (
	Idle State = iota
	Fetching
	Decoding
	Dispatching
	Committing
	CaughtUp
)

var stateNames = [...]string{"idle", "fetching", "decoding", "dispatching", "committing", "caught-up"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
