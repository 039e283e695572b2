package generation

// Phase is the lifecycle position of a generator instance.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a generator's lifecycle. Only this package can build
// one, so a result exists only when Succeeded and a message only when Failed.
type State struct {
	phase        Phase
	result       Artifact
	errorMessage string
}

func idleState() State    { return State{phase: PhaseIdle} }
func pendingState() State { return State{phase: PhasePending} }

func succeededState(a Artifact) State {
	return State{phase: PhaseSucceeded, result: a}
}

func failedState(message string) State {
	return State{phase: PhaseFailed, errorMessage: message}
}

func (s State) Phase() Phase { return s.phase }

func (s State) Pending() bool { return s.phase == PhasePending }

// Result returns the artifact of a Succeeded state.
func (s State) Result() (Artifact, bool) {
	if s.phase != PhaseSucceeded || s.result == nil {
		return nil, false
	}
	return s.result, true
}

// ErrorMessage returns the user-facing message of a Failed state.
func (s State) ErrorMessage() (string, bool) {
	if s.phase != PhaseFailed {
		return "", false
	}
	return s.errorMessage, true
}
