package events

// Event topics published by the storefront. Sibling frontend components
// used to coordinate through page-local DOM events; on the backend the
// same notifications go to a broker so fulfilment and notification
// workers can react.
const (
	TopicCartUpdated = "cart.updated"
	TopicOrderPlaced = "order.placed"
	TopicOrderPaid   = "order.paid"
	TopicLeadCreated = "lead.created"
)

// Publisher defines the interface for emitting storefront events.
// Publishing is best effort everywhere: a broker outage must never fail a
// customer request.
type Publisher interface {
	Publish(topic string, body []byte) error
	Close() error
}
