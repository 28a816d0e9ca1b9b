package shared

import "time"

// InboundMessage is the envelope delivered by the inbound text channel. The
// channel is at-least-once: the same message may arrive more than once and
// only messages from the same sender are ordered.
type InboundMessage struct {
	MessageID  string    `json:"message_id"`
	ChannelID  string    `json:"channel_id"`
	SenderID   string    `json:"sender_id"`
	Text       string    `json:"text"`
	QuotedText string    `json:"quoted_text,omitempty"` // The replied-to message, when the operator replied to one
	Timestamp  time.Time `json:"timestamp"`
}

// CommandKind classifies an inbound message. Unrecognized text is a
// first-class classification result, not an error.
type CommandKind string

const (
	CommandCredit           CommandKind = "CREDIT"
	CommandConfirmReference CommandKind = "CONFIRM_REFERENCE"
	CommandNone             CommandKind = "NONE"
)

// MatchOutcome describes the result of reconciling a credit against the
// pending charges of a profile. AlreadyConfirmed and NoPendingCharge are
// expected non-fatal outcomes of at-least-once processing.
type MatchOutcome string

const (
	MatchConfirmed        MatchOutcome = "CONFIRMED"
	MatchAlreadyConfirmed MatchOutcome = "ALREADY_CONFIRMED"
	MatchNoPendingCharge  MatchOutcome = "NO_PENDING_CHARGE"
)

// MatchResult reports which charge (if any) a credit was reconciled with.
type MatchResult struct {
	Outcome  MatchOutcome `json:"outcome"`
	ChargeID string       `json:"charge_id,omitempty"`
}
