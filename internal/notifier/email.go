package notifier

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"
)

// EmailNotifier delivers HTML reports over SMTP.
type EmailNotifier struct {
	Host      string
	Port      int
	Sender    string
	Password  string
	Recipient string
}

// NewEmailNotifier creates a notifier for the given SMTP account.
func NewEmailNotifier(host string, port int, sender, password, recipient string) *EmailNotifier {
	return &EmailNotifier{
		Host:      host,
		Port:      port,
		Sender:    sender,
		Password:  password,
		Recipient: recipient,
	}
}

// Send delivers one HTML message to the configured recipient.
func (e *EmailNotifier) Send(subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", e.Sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", e.Recipient))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	auth := smtp.PlainAuth("", e.Sender, e.Password, e.Host)
	if err := smtp.SendMail(addr, auth, e.Sender, []string{e.Recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (e *EmailNotifier) SendWithRetry(ctx context.Context, subject, htmlBody string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := e.Send(subject, htmlBody); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] email send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
