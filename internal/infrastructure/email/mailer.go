package email

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"paymint.backend/internal/domain/entities"
	"paymint.backend/pkg/logger"
)

// SMTPMailer sends transactional mail over SMTP. With no host configured
// it is disabled and every send is a logged no-op, so local setups work
// without a mail relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

var dialAndSend = func(d *gomail.Dialer, m *gomail.Message) error {
	return d.DialAndSend(m)
}

// NewSMTPMailer creates a mailer from SMTP settings
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendPaymentReceipt emails a receipt for a completed payment to the order
// owner. Failures are reported to the caller, which treats mail as best
// effort.
func (m *SMTPMailer) SendPaymentReceipt(ctx context.Context, recipientEmail string, payment *entities.Payment, order *entities.Order) error {
	if m.host == "" {
		logger.Debug(ctx, "mailer disabled, skipping payment receipt",
			zap.String("payment_no", payment.PaymentNo))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipientEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Payment received for %s", payment.OrderRef))
	msg.SetBody("text/html", buildReceiptBody(payment, order))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialAndSend(dialer, msg); err != nil {
		return fmt.Errorf("failed to send payment receipt: %w", err)
	}

	logger.Info(ctx, "payment receipt sent",
		zap.String("payment_no", payment.PaymentNo),
		zap.String("order_no", order.OrderNo))
	return nil
}

func buildReceiptBody(payment *entities.Payment, order *entities.Order) string {
	var b strings.Builder
	b.WriteString("<h2>Payment received</h2>")
	fmt.Fprintf(&b, "<p>A payment of <strong>%s %s</strong> was recorded against order <strong>%s</strong>.</p>",
		payment.Amount.StringFixed(2), payment.Currency, order.OrderNo)
	fmt.Fprintf(&b, "<p>Payment reference: %s<br>Chain: %s (%s)</p>",
		payment.PaymentNo, payment.Chain, payment.Network)
	if payment.Transaction != nil && payment.Transaction.TxHash != "" {
		fmt.Fprintf(&b, "<p>Transaction: %s</p>", payment.Transaction.TxHash)
	}
	fmt.Fprintf(&b, "<p>Order status: %s</p>", order.Status)
	return b.String()
}
