package author

// Author is an author record as exposed by the upstream API.
// IDBook references a book but is never checked for existence here.
type Author struct {
	ID        int    `json:"id"`
	IDBook    int    `json:"idBook" validate:"required"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// Outcome classifies how an upstream call ended. Every Service method
// returns a usable value regardless of the outcome; the outcome lets the
// HTTP layer decide how to present failures.
type Outcome int

const (
	// OutcomeOK means the upstream answered with a 2xx status.
	OutcomeOK Outcome = iota
	// OutcomeNotFound means the upstream answered 404.
	OutcomeNotFound
	// OutcomeRejected means the upstream answered with another non-2xx
	// status or an undecodable body.
	OutcomeRejected
	// OutcomeUnavailable means the upstream could not be reached.
	OutcomeUnavailable
)

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o == OutcomeOK
}

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}
