package events

import "time"

const MailRequestedTopic = "sales.mail.requested.v1"

// Mail kinds understood by the mail consumer.
const (
	MailKindVerifyEmail   = "verify_email"
	MailKindPasswordReset = "password_reset"
	MailKindStaffInvite   = "staff_invite"
)

// MailRequestedEvent asks the mail pipeline to send one transactional email.
// The token travels in the event, never in the database (only its hash is
// persisted by the token store).
type MailRequestedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	Kind       string    `json:"kind"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Token      string    `json:"token,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
