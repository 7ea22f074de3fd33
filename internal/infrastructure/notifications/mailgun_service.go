package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

const sendTimeout = 10 * time.Second

// MailgunService implements domain.Mailer
type MailgunService struct {
	client *mailgun.MailgunImpl
	sender string
	logger *logrus.Logger
}

// NewMailgunService creates the mail collaborator. When the domain or API
// key is not configured, outbound mail is logged instead of sent.
func NewMailgunService(mgDomain, apiKey, sender string, logger *logrus.Logger) domain.Mailer {
	svc := &MailgunService{sender: sender, logger: logger}
	if mgDomain != "" && apiKey != "" {
		svc.client = mailgun.NewMailgun(mgDomain, apiKey)
	}
	return svc
}

// Send implements domain.Mailer
func (m *MailgunService) Send(to, subject, body string) error {
	if m.client == nil {
		m.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("mailgun not configured, logging mail instead of sending")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	msg := m.client.NewMessage(m.sender, subject, body, to)
	if _, _, err := m.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
