package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

// SMTPNotifier renders notification templates and delivers them over SMTP.
// Delivery is best-effort by contract; callers log failures and move on.
type SMTPNotifier struct {
	addr       string // host:port
	auth       smtp.Auth
	from       string
	storeEmail string // receives the new-order copy
	sendMail   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(host string, port int, username, password, from, storeEmail string) *SMTPNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPNotifier{
		addr:       fmt.Sprintf("%s:%d", host, port),
		auth:       auth,
		from:       from,
		storeEmail: storeEmail,
		sendMail:   smtp.SendMail,
	}
}

func (n *SMTPNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	switch notification.Kind {
	case domain.NotificationOrderPlaced:
		// Store copy first, then the customer confirmation, so per-order
		// mails arrive in causal order.
		if n.storeEmail != "" {
			if err := n.send(n.storeEmail, newOrderAdminSubject(notification.Order), newOrderAdminBody(notification.Order)); err != nil {
				return err
			}
		}
		return n.send(notification.Recipient, orderConfirmationSubject(notification.Order), orderConfirmationBody(notification.Order))
	case domain.NotificationStatusChanged:
		return n.send(notification.Recipient, statusChangedSubject(notification.Order), statusChangedBody(notification.Order))
	case domain.NotificationWelcome:
		return n.send(notification.Recipient, "Welcome to JerseyPro Newsletter!", welcomeBody())
	default:
		return fmt.Errorf("unknown notification kind %q", notification.Kind)
	}
}

func (n *SMTPNotifier) send(to, subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + n.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	if err := n.sendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func itemLines(order *domain.Order) string {
	var b strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s) - %d x ₹%s</li>", item.Name, item.Size, item.Quantity, item.Price)
	}
	return b.String()
}

func newOrderAdminSubject(order *domain.Order) string {
	return fmt.Sprintf("New Order Received - #%s", order.OrderNumber)
}

func newOrderAdminBody(order *domain.Order) string {
	addr := order.ShippingAddress
	return fmt.Sprintf(`<h1>New Order Placed!</h1>
<p><strong>Order Number:</strong> %s</p>
<p><strong>Total Amount:</strong> ₹%s</p>
<h2>Customer Details:</h2>
<ul>
<li><strong>Name:</strong> %s</li>
<li><strong>Email:</strong> %s</li>
<li><strong>Phone:</strong> %s</li>
<li><strong>Address:</strong> %s, %s, %s, %s - %s</li>
</ul>
<h2>Order Items:</h2>
<ul>%s</ul>
<p><strong>Payment Method:</strong> %s</p>`,
		order.OrderNumber, order.TotalAmount,
		addr.Name, addr.Email, addr.ContactNumber,
		addr.Address, addr.City, addr.District, addr.State, addr.Pincode,
		itemLines(order), order.PaymentMethod)
}

func orderConfirmationSubject(order *domain.Order) string {
	return fmt.Sprintf("Order Confirmation - #%s", order.OrderNumber)
}

func orderConfirmationBody(order *domain.Order) string {
	return fmt.Sprintf(`<h1>Thank You for Your Order!</h1>
<p>Hi %s,</p>
<p>Your order #%s has been successfully placed and will be processed shortly.</p>
<h2>Order Details:</h2>
<ul>%s</ul>
<h3>Total Amount: ₹%s</h3>
<p>We'll notify you once your order has been shipped.</p>`,
		order.ShippingAddress.Name, order.OrderNumber, itemLines(order), order.TotalAmount)
}

func statusChangedSubject(order *domain.Order) string {
	return fmt.Sprintf("Update on your Order #%s - Status: %s", order.OrderNumber, order.OrderStatus)
}

func statusChangedBody(order *domain.Order) string {
	tracking := ""
	if order.TrackingNumber != "" {
		tracking = fmt.Sprintf("<p>Your tracking number is: <strong>%s</strong></p>", order.TrackingNumber)
	}
	return fmt.Sprintf(`<h1>Your Order Status Has Been Updated!</h1>
<p>Dear %s,</p>
<p>The status of your order #%s has been changed to: <strong>%s</strong>.</p>
%s
<p>Thank you for your patience!</p>`,
		order.ShippingAddress.Name, order.OrderNumber, order.OrderStatus, tracking)
}

func welcomeBody() string {
	return `<h2>Welcome to JerseyPro!</h2>
<p>Thank you for subscribing to our newsletter. You'll be the first to know about:</p>
<ul>
<li>New jersey releases</li>
<li>Exclusive discounts and offers</li>
<li>Limited edition collections</li>
</ul>
<p>If you didn't subscribe to this newsletter, you can safely ignore this email.</p>`
}
