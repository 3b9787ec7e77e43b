package types

// Legal state transitions. A status missing from the map is terminal.
// Store-level updates must restrict their WHERE clause to
// TransitionSources(to) so that concurrent deliveries of the same event
// cannot both apply it.

var paymentLinkTransitions = map[PaymentLinkStatus][]PaymentLinkStatus{
	PAYMENT_LINK_PENDING: {PAYMENT_LINK_ACTIVE, PAYMENT_LINK_PAID, PAYMENT_LINK_CANCELLED, PAYMENT_LINK_EXPIRED},
	PAYMENT_LINK_ACTIVE:  {PAYMENT_LINK_PAID, PAYMENT_LINK_CANCELLED, PAYMENT_LINK_EXPIRED},
}

var depositTransitions = map[DepositStatus][]DepositStatus{
	DEPOSIT_PENDING:    {DEPOSIT_AUTHORIZED, DEPOSIT_EXPIRED},
	DEPOSIT_AUTHORIZED: {DEPOSIT_RELEASED, DEPOSIT_CAPTURED, DEPOSIT_EXPIRED},
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BOOKING_DRAFT:     {BOOKING_CONFIRMED, BOOKING_CANCELLED},
	BOOKING_CONFIRMED: {BOOKING_CANCELLED},
	BOOKING_CANCELLED: {BOOKING_DRAFT},
}

func (s PaymentLinkStatus) CanTransition(to PaymentLinkStatus) bool {
	for _, t := range paymentLinkTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s PaymentLinkStatus) Terminal() bool {
	return len(paymentLinkTransitions[s]) == 0
}

func (s DepositStatus) CanTransition(to DepositStatus) bool {
	for _, t := range depositTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s DepositStatus) Terminal() bool {
	return len(depositTransitions[s]) == 0
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// PaymentLinkSources returns every status a payment link may move to `to`
// from.
func PaymentLinkSources(to PaymentLinkStatus) []PaymentLinkStatus {
	var from []PaymentLinkStatus
	for s, targets := range paymentLinkTransitions {
		for _, t := range targets {
			if t == to {
				from = append(from, s)
			}
		}
	}
	return from
}

// DepositSources returns every status a deposit authorization may move to
// `to` from.
func DepositSources(to DepositStatus) []DepositStatus {
	var from []DepositStatus
	for s, targets := range depositTransitions {
		for _, t := range targets {
			if t == to {
				from = append(from, s)
			}
		}
	}
	return from
}
