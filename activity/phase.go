package activity

import "sync/atomic"

// Phase is a step of the handshake. Transitions only move forward.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseHostReady
	PhaseAuthorized
	PhaseTokenExchanged
	PhaseAuthenticated
	PhaseEnriched
)

var phaseNames = map[Phase]string{
	PhaseUninitialized:  "Uninitialized",
	PhaseHostReady:      "HostReady",
	PhaseAuthorized:     "Authorized",
	PhaseTokenExchanged: "TokenExchanged",
	PhaseAuthenticated:  "Authenticated",
	PhaseEnriched:       "Enriched",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// transition guards the single outgoing edge of a state value.
type transition struct {
	used atomic.Bool
}

func (t *transition) take() bool {
	return t.used.CompareAndSwap(false, true)
}
