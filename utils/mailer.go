package utils

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// CampaignMailer delivers generated campaign emails over SMTP. Delivery is a
// collaborator of the generation pipeline: it consumes EmailContent and does
// not inspect it beyond addressing.
type CampaignMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *logrus.Logger
}

func NewCampaignMailer(host string, port int, username, password, from string, logger *logrus.Logger) *CampaignMailer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CampaignMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

// Send delivers one generated email. The message id is assigned by the
// caller so tracking URLs injected before delivery match the stored record.
func (cm *CampaignMailer) Send(email EmailContent, messageID string) error {
	from := cm.from
	if email.SenderEmail != "" {
		from = email.SenderEmail
	}

	m := gomail.NewMessage()
	if email.SenderName != "" {
		m.SetHeader("From", fmt.Sprintf("%s <%s>", email.SenderName, from))
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.RecipientEmail)
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("X-Mailcraft-Message-ID", messageID)
	m.SetBody("text/plain", email.Body)
	m.AddAlternative("text/html", email.HTML)

	if err := cm.dialer.DialAndSend(m); err != nil {
		cm.logger.WithFields(logrus.Fields{
			"recipient": email.RecipientEmail,
			"error":     err,
		}).Error("failed to send campaign email")
		return fmt.Errorf("error sending email: %w", err)
	}

	cm.logger.WithField("recipient", email.RecipientEmail).Info("campaign email sent")
	return nil
}
