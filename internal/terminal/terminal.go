// Package terminal defines the gateway to the external trading terminal and
// a concrete client for the HTTP bridge that fronts it. The terminal owns
// live market state and order execution; this package only shapes requests
// and responses.
package terminal

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConnected marks failures caused by an unreachable terminal session,
// as opposed to a valid session returning an empty result.
var ErrNotConnected = errors.New("terminal not connected")

// TerminalError is a failure reported by the terminal itself: a negative
// error code plus the terminal's description.
type TerminalError struct {
	Code        int
	Description string
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal error %d: %s", e.Code, e.Description)
}

// Gateway is the narrow request/response surface of the trading terminal.
// Implementations must be safe to call from multiple goroutines but are
// expected to serialize in-flight calls internally; the terminal API is not
// safe for concurrent overlapping calls.
type Gateway interface {
	// ResolveSymbols returns the instruments matching a name or group
	// pattern (e.g. "EURUSD" or "*USD*").
	ResolveSymbols(ctx context.Context, pattern string) ([]Symbol, error)

	// ActivateSymbol makes a symbol visible/subscribed in the terminal so
	// it can be traded.
	ActivateSymbol(ctx context.Context, name string) error

	// Quote returns the current bid/ask for a symbol, or nil when no quote
	// is available.
	Quote(ctx context.Context, symbol string) (*Tick, error)

	// Submit sends a trade request and returns the terminal's result, or a
	// *TerminalError when the terminal rejects the call.
	Submit(ctx context.Context, req Request) (*Result, error)

	// Positions returns the live open positions matching the filter, or nil
	// when there are none.
	Positions(ctx context.Context, filter Filter) ([]RawPosition, error)

	// PendingOrders returns the live pending orders matching the filter, or
	// nil when there are none.
	PendingOrders(ctx context.Context, filter Filter) ([]RawOrder, error)

	// Deals returns historical deals in the query window.
	Deals(ctx context.Context, query DealsQuery) ([]RawDeal, error)

	// Connected reports whether the terminal session is reachable.
	Connected() bool
}
