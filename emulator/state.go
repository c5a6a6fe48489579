package emulator

// State is the execution state of an engine.
type State int32

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_STOPPED  = State(iota) // stopped
	STATE_RUNNING                // running
	STATE_HALTED                 // halted
	STATE_FINISHED               // finished
	STATE_FAILED                 // failed
)

// Idle is true for the states a new run or stepping sequence may start
// from.
func (st State) Idle() bool {
	return st == STATE_STOPPED || st == STATE_FINISHED || st == STATE_FAILED
}
