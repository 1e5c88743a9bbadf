package domain

import "errors"

// Refusal is a handled decision not to perform the requested mutation.
type Refusal struct {
	Reason error
	Stage  string
}

func (r Refusal) Error() string {
	if r.Stage == "" {
		return r.Reason.Error()
	}
	return r.Stage + ": " + r.Reason.Error()
}

func (r Refusal) Unwrap() error {
	return r.Reason
}

// DispatchResult is either Sent(messages) or Refused(reason).
type DispatchResult struct {
	Messages []OutboundMessage
	Refusal  *Refusal
}

func Sent(messages ...OutboundMessage) DispatchResult {
	return DispatchResult{Messages: messages}
}

func Refused(reason error) DispatchResult {
	return DispatchResult{Refusal: &Refusal{Reason: reason}}
}

func RefusedAt(stage string, reason error) DispatchResult {
	return DispatchResult{Refusal: &Refusal{Reason: reason, Stage: stage}}
}

func (r DispatchResult) IsRefused() bool {
	return r.Refusal != nil
}

// RefusedWith reports whether the result is a refusal caused by target.
func (r DispatchResult) RefusedWith(target error) bool {
	return r.Refusal != nil && errors.Is(r.Refusal.Reason, target)
}
