package payment

import "context"

type ChargeRequest struct {
	AmountCents int64
	Currency    string
	Token       string
	OrderID     string
}

// ChargeResult is what the checkout orchestration acts on. A decline is a
// result (Succeeded=false), not an error; errors mean the gateway itself
// could not be reached or answered abnormally.
type ChargeResult struct {
	Reference     string
	Succeeded     bool
	DeclineReason string
}

type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
