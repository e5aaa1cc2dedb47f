package model

// EventType identifies a reporter event.
type EventType int

// Reporter events, in the order a class emits them.
const (
	EventClassHeader EventType = iota
	EventStructuralErrors
	EventMethodHeader
	EventTestOutcome
	EventDescription
	EventClassSummary
	EventFatalAbort
)

// Event is a flattened reporter event, used to journal a run and replay it.
type Event struct {
	Type    EventType
	Class   string
	Method  string
	Text    string
	Errors  []StructuralError
	Outcome Outcome
	Summary Summary
}
