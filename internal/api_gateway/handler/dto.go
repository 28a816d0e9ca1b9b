package handler

import (
	"time"

	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/domain/profile"
)

// EnsureProfileRequest represents a request to register a profile
type EnsureProfileRequest struct {
	PersonalIdentifier string `json:"personal_identifier" binding:"required"`
}

// UpdateProfileRequest represents an attribute edit. The balance is not an
// accepted field on this path.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CanEdit     *bool   `json:"can_edit,omitempty"`
}

// CreditRequest represents a request to credit a profile's balance
type CreditRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// MatchRequest represents a request to reconcile a credit against the
// profile's pending charges
type MatchRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// CreateChargeRequest represents a request to file a top-up charge
type CreateChargeRequest struct {
	ID                 string  `json:"id,omitempty"`
	PersonalIdentifier string  `json:"personal_identifier" binding:"required"`
	Amount             float64 `json:"amount" binding:"required"`
}

// CreateOrderRequest represents a request to file an order
type CreateOrderRequest struct {
	ID                 string `json:"id,omitempty"`
	PersonalIdentifier string `json:"personal_identifier" binding:"required"`
	Details            string `json:"details,omitempty"`
}

// BanRequest represents a request to ban an identifier
type BanRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CommandRequest represents a free-text operator message submitted over HTTP
// instead of the messaging channel
type CommandRequest struct {
	MessageID  string `json:"message_id,omitempty"`
	ChannelID  string `json:"channel_id" binding:"required"`
	SenderID   string `json:"sender_id,omitempty"`
	Text       string `json:"text" binding:"required"`
	QuotedText string `json:"quoted_text,omitempty"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	PersonalIdentifier string  `json:"personal_identifier"`
	DisplayName        string  `json:"display_name"`
	Phone              string  `json:"phone,omitempty"`
	Balance            float64 `json:"balance"`
	CanEdit            bool    `json:"can_edit"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// CreditResponse reports the balance after a credit
type CreditResponse struct {
	PersonalIdentifier string  `json:"personal_identifier"`
	NewBalance         float64 `json:"new_balance"`
}

// ChargeResponse represents a charge in API responses
type ChargeResponse struct {
	ID                 string  `json:"id"`
	PersonalIdentifier string  `json:"personal_identifier"`
	Amount             float64 `json:"amount"`
	Status             string  `json:"status"`
	Replied            bool    `json:"replied"`
	CreatedAt          string  `json:"created_at"`
}

// ConfirmChargeResponse reports the owner's balance after a charge confirm
type ConfirmChargeResponse struct {
	ID         string  `json:"id"`
	NewBalance float64 `json:"new_balance"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                 string `json:"id"`
	PersonalIdentifier string `json:"personal_identifier"`
	Details            string `json:"details,omitempty"`
	Status             string `json:"status"`
	Replied            bool   `json:"replied"`
	CreatedAt          string `json:"created_at"`
}

// BanResponse represents a ban entry in API responses
type BanResponse struct {
	PersonalIdentifier string `json:"personal_identifier"`
	Reason             string `json:"reason"`
	CreatedAt          string `json:"created_at"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID                 string `json:"id"`
	PersonalIdentifier string `json:"personal_identifier"`
	Text               string `json:"text"`
	Read               bool   `json:"read"`
	CreatedAt          string `json:"created_at"`
}

// NotificationListResponse represents a notification feed in API responses
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// CountResponse reports how many records a bulk operation touched
type CountResponse struct {
	Count int64 `json:"count"`
}

func mapProfileToResponse(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		PersonalIdentifier: p.PersonalIdentifier,
		DisplayName:        p.DisplayName,
		Phone:              p.Phone,
		Balance:            p.Balance,
		CanEdit:            p.CanEdit,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}

func mapChargeToResponse(c *charge.Charge) ChargeResponse {
	return ChargeResponse{
		ID:                 c.ID,
		PersonalIdentifier: c.PersonalIdentifier,
		Amount:             c.Amount,
		Status:             string(c.Status),
		Replied:            c.Replied,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
}

func mapOrderToResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID,
		PersonalIdentifier: o.PersonalIdentifier,
		Details:            o.Details,
		Status:             string(o.Status),
		Replied:            o.Replied,
		CreatedAt:          o.CreatedAt.Format(time.RFC3339),
	}
}

func mapBanToResponse(b *ban.BannedIdentifier) BanResponse {
	return BanResponse{
		PersonalIdentifier: b.PersonalIdentifier,
		Reason:             b.Reason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}
}

func mapNotificationsToResponse(items []*notification.Notification) NotificationListResponse {
	out := NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(items)),
	}
	for _, n := range items {
		out.Notifications = append(out.Notifications, NotificationResponse{
			ID:                 n.ID,
			PersonalIdentifier: n.PersonalIdentifier,
			Text:               n.Text,
			Read:               n.Read,
			CreatedAt:          n.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
