// Package session holds the single Turing test session and the controller
// that moves it through its states.
package session

import "fmt"

// State is the phase of a test.
type State int

const (
	StateInitial State = iota
	StateAnswering
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateAnswering:
		return "answering"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText lets State appear by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is one test's data. Empty strings stand for "not generated yet".
// Processing and Error are flags layered on top of State.
type Session struct {
	State       State  `json:"state"`
	Question    string `json:"question"`
	HumanAnswer string `json:"human_answer"`
	AIAnswer    string `json:"ai_answer"`
	Verdict     string `json:"verdict"`
	Processing  bool   `json:"is_processing"`
	Error       string `json:"error_message"`
}
