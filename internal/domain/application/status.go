package application

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusWaiting, StatusAccepted, StatusRejected:
		return st, true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether an application in s may move to next.
// waiting -> waiting is allowed and changes nothing.
func (s Status) CanTransitionTo(next Status) bool {
	if _, ok := ParseStatus(string(next)); !ok {
		return false
	}
	return s == StatusWaiting
}
