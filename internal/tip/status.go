package tip

import (
	"encoding/json"
	"fmt"
)

// Phase is the stage of a submission.
type Phase int

// Submission phases. Idle → Preparing → AwaitingSignature → Submitted | Failed.
const (
	PhaseIdle Phase = iota
	PhasePreparing
	PhaseAwaitingSignature
	PhaseSubmitted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreparing:
		return "preparing"
	case PhaseAwaitingSignature:
		return "awaiting_signature"
	case PhaseSubmitted:
		return "submitted"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Terminal reports whether the phase ends a submission.
func (p Phase) Terminal() bool {
	return p == PhaseSubmitted || p == PhaseFailed
}

// InFlight reports whether a submission is running.
func (p Phase) InFlight() bool {
	return p == PhasePreparing || p == PhaseAwaitingSignature
}

// Status is the single source of truth for what the form shows. Digest is set
// only when Submitted; Message, Kind and Err only when Failed.
type Status struct {
	Phase   Phase
	Digest  string
	Message string
	Kind    ErrorKind
	Err     error
}

func idle() Status {
	return Status{Phase: PhaseIdle}
}

func preparing() Status {
	return Status{Phase: PhasePreparing}
}

func awaitingSignature() Status {
	return Status{Phase: PhaseAwaitingSignature}
}

func submitted(digest string) Status {
	return Status{Phase: PhaseSubmitted, Digest: digest}
}

func failed(err error) Status {
	return Status{
		Phase:   PhaseFailed,
		Message: messageOf(err),
		Kind:    kindOf(err),
		Err:     err,
	}
}

// String is the human-readable status line.
func (s Status) String() string {
	switch s.Phase {
	case PhasePreparing:
		return "Preparing transaction..."
	case PhaseAwaitingSignature:
		return "Requesting wallet signature..."
	case PhaseSubmitted:
		return "Transaction sent. Digest: " + s.Digest
	case PhaseFailed:
		return s.Message
	default:
		return ""
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phase   string    `json:"phase"`
		Text    string    `json:"text,omitempty"`
		Digest  string    `json:"digest,omitempty"`
		Message string    `json:"message,omitempty"`
		Kind    ErrorKind `json:"kind,omitempty"`
	}{
		Phase:   s.Phase.String(),
		Text:    s.String(),
		Digest:  s.Digest,
		Message: s.Message,
		Kind:    s.Kind,
	})
}
