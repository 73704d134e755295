package leave

// AggregateDecision derives the overall leave status from its full approval
// record set. One rejection rejects the leave; approval requires every
// record; anything still pending keeps the leave at NEW.
//
// The rule is commutative over the record set and idempotent, so two
// approvers deciding near-simultaneously converge to the same status no
// matter which recompute runs last. Callers must pass the records as
// re-read inside the current transaction, never a stale in-memory copy.
//
// Never call this with an empty set: a leave without records was either
// auto-approved at creation or predates per-approver records, and its
// stored status is authoritative.
func AggregateDecision(records []ApprovalRecord) string {
	allApproved := len(records) > 0

	for _, r := range records {
		switch r.DecisionStatus {
		case DecisionRejected:
			return StatusRejected
		case DecisionApproved:
			// keeps allApproved
		default:
			allApproved = false
		}
	}

	if allApproved {
		return StatusApproved
	}
	return StatusNew
}

// PendingCount reports how many approvals are still outstanding.
func PendingCount(records []ApprovalRecord) int {
	n := 0
	for _, r := range records {
		if r.DecisionStatus == DecisionPending {
			n++
		}
	}
	return n
}
