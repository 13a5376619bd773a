package send

import (
	"context"
	"time"

	"github.com/AzielCF/az-courier/config"
)

type TargetKind string

const (
	TargetIndividual TargetKind = "individual"
	TargetGroup      TargetKind = "group"
)

// Target is the delivery endpoint of a message. Individuals carry a phone
// number; groups are routed by name.
type Target struct {
	Kind  TargetKind `json:"kind"`
	Name  string     `json:"name"`
	Phone string     `json:"phone,omitempty"`
}

func IndividualTarget(name, phone string) Target {
	return Target{Kind: TargetIndividual, Name: name, Phone: phone}
}

func GroupTarget(name string) Target {
	return Target{Kind: TargetGroup, Name: name}
}

type OutcomeStatus string

const (
	StatusSent    OutcomeStatus = "sent"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
)

// Outcome is the result of dispatching one (target, message) pair.
// Skipped and Failed carry the reason; Sent carries none.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
}

func Sent() Outcome {
	return Outcome{Status: StatusSent}
}

func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}

// SendOptions carries the per-send pacing settings from configuration.
type SendOptions struct {
	WaitTime       time.Duration
	CloseAfterSend bool
}

// Transport performs the actual message delivery. Implementations must
// return failures as errors, never panic across this boundary.
type Transport interface {
	SendText(ctx context.Context, phone, message string, opts SendOptions) error
	SendImage(ctx context.Context, phone, imagePath, caption string, opts SendOptions) error
	SendGroupText(ctx context.Context, groupName, message string, opts SendOptions) error
}

// IDispatchUsecase routes one (target, message) pair through validation to
// at most one Transport call.
type IDispatchUsecase interface {
	Process(ctx context.Context, target Target, message config.Message) Outcome
}
