package events

import "time"

const OrderStatusChangedTopic = "sales.order.status.v1"

type OrderStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	OrderID    string    `json:"order_id"`
	CompanyID  string    `json:"company_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}
