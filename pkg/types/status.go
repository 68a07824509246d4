package types

// Status is a unit's durable progress state.
// A unit moves from StatusPending to exactly one terminal status per store
// lifetime; only a full reinitialization returns it to pending.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Terminal reports whether the status is a terminal state
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusSkipped || s == StatusError
}

// Valid reports whether the status is a known value
func (s Status) Valid() bool {
	return s == StatusPending || s.Terminal()
}
