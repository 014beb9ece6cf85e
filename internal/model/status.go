package model

var (
	// StatusPending indicates a submission awaiting the recruiter's decision
	StatusPending = "pending"
	// StatusReviewing exists as a filter tab but nothing transitions into it.
	// TODO: confirm with product whether reviewing should become reachable.
	StatusReviewing = "reviewing"
	// StatusAccepted is a terminal decision
	StatusAccepted = "accepted"
	// StatusRejected is a terminal decision
	StatusRejected = "rejected"
)

// ApplicationStatuses lists every legal status value, in tab display order.
var ApplicationStatuses = []string{StatusPending, StatusReviewing, StatusAccepted, StatusRejected}

// IsValidStatus reports whether s is one of the four legal status values.
func IsValidStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether a submission may move from one status to
// another. Only a pending submission can be decided, and a decision is final:
// pending->accepted and pending->rejected are the whole transition table.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusAccepted || to == StatusRejected
}
