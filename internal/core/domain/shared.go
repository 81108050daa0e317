package domain

// ID is the store-assigned product identifier. Empty until the first
// successful persistence, immutable afterwards.
type ID string

type Event interface {
	GetName() string
	GetEntityName() string
	GetKey() string
}

// FieldViolation is a single structural validation failure, rendered as
// "<field>: <reason>".
type FieldViolation struct {
	Field  string
	Reason string
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Reason
}
