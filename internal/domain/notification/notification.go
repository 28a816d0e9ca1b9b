package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-system record of a ledger-affecting event. It is
// created only by the notifier and delivered to users by a collaborator
// outside this system.
type Notification struct {
	ID                 string    `json:"id" bson:"_id"`
	PersonalIdentifier string    `json:"personal_identifier" bson:"personal_identifier"`
	Text               string    `json:"text" bson:"text"`
	Read               bool      `json:"read" bson:"read"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// NewNotification creates an unread notification for the identifier.
func NewNotification(personalIdentifier, text string) *Notification {
	return &Notification{
		ID:                 uuid.NewString(),
		PersonalIdentifier: personalIdentifier,
		Text:               text,
		Read:               false,
		CreatedAt:          time.Now(),
	}
}
