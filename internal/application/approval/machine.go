package approval

import "fmt"

// State names a node of the user approval state machine.
type State string

const (
	StateValidateUser       State = "ValidateUser"
	StateCheckValidation    State = "CheckValidation"
	StateRegisterUser       State = "RegisterUser"
	StateSucceeded          State = "Succeeded"
	StateValidationFailed   State = "ValidationFailed"
	StateRegistrationFailed State = "RegistrationFailed"
)

// StartState is where every run begins.
const StartState = StateValidateUser

// Event is the outcome a state reports to the interpreter.
type Event string

const (
	EventCompleted Event = "completed"
	EventFault     Event = "fault"
	EventValid     Event = "valid"
	EventInvalid   Event = "invalid"
)

var transitions = map[State]map[Event]State{
	StateValidateUser: {
		EventCompleted: StateCheckValidation,
		EventFault:     StateValidationFailed,
	},
	StateCheckValidation: {
		EventValid:   StateRegisterUser,
		EventInvalid: StateValidationFailed,
	},
	StateRegisterUser: {
		EventCompleted: StateSucceeded,
		EventFault:     StateRegistrationFailed,
	},
}

// Failure is the error/cause pair a failed terminal state reports.
type Failure struct {
	Error string `json:"error"`
	Cause string `json:"cause"`
}

var failures = map[State]Failure{
	StateValidationFailed:   {Error: "ValidationError", Cause: "User validation failed"},
	StateRegistrationFailed: {Error: "RegistrationError", Cause: "User registration failed"},
}

// TransitionError is returned for an event the current state does not accept.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition from %s on %s", e.From, e.Event)
}

// Next looks up the transition table.
func Next(from State, ev Event) (State, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return "", &TransitionError{From: from, Event: ev}
	}
	return to, nil
}

func (s State) IsTerminal() bool {
	switch s {
	case StateSucceeded, StateValidationFailed, StateRegistrationFailed:
		return true
	}
	return false
}

// Failure returns the failure descriptor of a failed terminal state.
func (s State) Failure() (Failure, bool) {
	f, ok := failures[s]
	return f, ok
}
