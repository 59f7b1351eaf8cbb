// Package xcall implements the asynchronous call and callback protocol used
// between the registry, its vaults, and external asset contracts. A call
// carries a method name and a JSON payload to a target address; the outcome
// comes back later through a callback that fires exactly once. An outcome is
// never silently dropped: a call that cannot complete within its budget
// resolves as pending rather than hanging forever.
package xcall

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status classifies the outcome of an asynchronous call
type Status string

const (
	// StatusResolved means the target executed the method successfully
	StatusResolved Status = "resolved"
	// StatusFailed means the target rejected or failed the method
	StatusFailed Status = "failed"
	// StatusPending means the call did not resolve within its budget; the
	// remote effect may or may not have happened
	StatusPending Status = "pending"
)

// Outcome is the result of one asynchronous call, delivered to the caller's
// callback exactly once.
type Outcome struct {
	// Status classifies the result
	Status Status `json:"status"`
	// Value is the JSON-encoded return value when status is resolved
	Value json.RawMessage `json:"value,omitempty"`
	// Reason carries the failure reason when status is failed
	Reason string `json:"reason,omitempty"`
}

// Resolved builds a successful outcome wrapping v as JSON. Marshal failures
// surface as a failed outcome so the caller always gets a terminal status.
func Resolved(v interface{}) Outcome {
	if v == nil {
		return Outcome{Status: StatusResolved}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Failed("failed to encode return value: " + err.Error())
	}
	return Outcome{Status: StatusResolved, Value: data}
}

// Failed builds a failed outcome with the given reason
func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}

// Pending builds a pending outcome
func Pending() Outcome {
	return Outcome{Status: StatusPending}
}

// Request is one asynchronous call to a method on a remote component
type Request struct {
	// ID identifies the call for saga reconciliation, unique per call
	ID string `json:"id"`
	// Caller is the address issuing the call
	Caller string `json:"caller"`
	// Target is the address the call is directed at
	Target string `json:"target"`
	// Method is the method name on the target
	Method string `json:"method"`
	// Payload is the JSON-encoded method arguments
	Payload json.RawMessage `json:"payload,omitempty"`
	// Budget bounds how long the caller waits before the outcome resolves
	// as pending; zero uses the dispatcher default
	Budget time.Duration `json:"-"`
}

// Callback receives the outcome of a call. A dispatcher invokes it exactly
// once per call.
type Callback func(ctx context.Context, out Outcome)

// Handler executes one method on a component. The returned value is wrapped
// in a resolved outcome; a non-nil error produces a failed outcome carrying
// the error text.
type Handler func(ctx context.Context, req Request) (json.RawMessage, error)

// Dispatcher delivers requests to target components and outcomes back to the
// callers
//
//go:generate mockgen -source=xcall.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Call issues req and arranges for cb to fire exactly once with the
	// outcome. Call itself returns quickly; it only errors when the request
	// could not be issued at all.
	Call(ctx context.Context, req Request, cb Callback) error
}

// NewRequestID generates a lexically sortable unique call identifier
func NewRequestID() string {
	return ulid.Make().String()
}

// NewRequest builds a request with a fresh ID and marshaled payload
func NewRequest(caller, target, method string, payload interface{}) (Request, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Request{}, err
		}
		data = b
	}
	return Request{
		ID:      NewRequestID(),
		Caller:  caller,
		Target:  target,
		Method:  method,
		Payload: data,
	}, nil
}
