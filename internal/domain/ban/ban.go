package ban

import "time"

// BannedIdentifier is a set entry blocking ledger-credit and charge-confirm
// operations for a personal identifier. The reason is retained for audit and
// discarded on unban.
type BannedIdentifier struct {
	PersonalIdentifier string    `json:"personal_identifier" bson:"personal_identifier"`
	Reason             string    `json:"reason" bson:"reason"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// NewBannedIdentifier records a ban with its audit reason.
func NewBannedIdentifier(personalIdentifier, reason string) *BannedIdentifier {
	return &BannedIdentifier{
		PersonalIdentifier: personalIdentifier,
		Reason:             reason,
		CreatedAt:          time.Now(),
	}
}
