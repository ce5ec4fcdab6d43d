// Package dashboard holds the view state of the finance dashboard and the actions that change it.
package dashboard

// WritePolicy decides what happens when feed responses resolve out of order.
type WritePolicy int

const (
	// LastResolvedWins applies every response in the order it resolves.
	// Two overlapping requests leave whichever finished last on screen.
	LastResolvedWins WritePolicy = iota
	// LatestDispatchWins drops a response when a newer request of the same feed already applied.
	LatestDispatchWins
)

// String implements fmt.Stringer.
func (p WritePolicy) String() string {
	switch p {
	case LastResolvedWins:
		return "last-resolved-wins"
	case LatestDispatchWins:
		return "latest-dispatch-wins"
	default:
		return "unknown"
	}
}

// Ticket is the generation handed out when a feed request is dispatched.
type Ticket uint64

// Feed is one independent unit of remote data.
// Loading stays true while any request of the feed is in flight.
type Feed[T any] struct {
	Data       T
	Err        error
	HasData    bool
	inflight   int
	dispatched Ticket
	applied    Ticket
}

// Loading reports whether a request is in flight.
func (f Feed[T]) Loading() bool {
	return f.inflight > 0
}

// begin records a dispatch and clears the previous error.
func (f *Feed[T]) begin() Ticket {
	f.inflight++
	f.dispatched++
	f.Err = nil
	return f.dispatched
}

// end records a resolution and reports whether its outcome may be written.
func (f *Feed[T]) end(t Ticket, policy WritePolicy) bool {
	if f.inflight > 0 {
		f.inflight--
	}
	if policy == LatestDispatchWins && t < f.applied {
		return false
	}
	if t > f.applied {
		f.applied = t
	}
	return true
}

// set replaces the held data.
func (f *Feed[T]) set(v T) {
	f.Data = v
	f.HasData = true
}
