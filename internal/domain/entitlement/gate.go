package entitlement

// CanView reports whether the decision allows opening the content unit.
func CanView(d AccessDecision) bool {
	return d.Granted
}

// CanPurchase reports whether a new purchase request may be submitted for
// the unit. Submission is only allowed when no request is in flight and
// access has not already been granted: a pending request must not be
// duplicated, and an accepted one needs no successor.
func CanPurchase(d AccessDecision) bool {
	switch d.Status {
	case AccessStatusNone, AccessStatusRejected:
		return true
	default:
		return false
	}
}
