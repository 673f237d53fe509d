package domain

type NotificationKind string

const (
	NotificationOrderPlaced   NotificationKind = "order_placed"
	NotificationStatusChanged NotificationKind = "status_changed"
	NotificationWelcome       NotificationKind = "welcome"
)

// Notification is a best-effort delivery request handed to the dispatcher.
// Order is set for order-related kinds, nil for welcome mail.
type Notification struct {
	Kind      NotificationKind
	Recipient string
	Order     *Order
}
