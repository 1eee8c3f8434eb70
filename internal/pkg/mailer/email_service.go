// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRetentionWarning(toEmail, fullName string, lastActive, deletionDate time.Time) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	clientURL    string
	supportEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL, supportEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		clientURL:    clientURL,
		supportEmail: supportEmail,
	}
}

func (s *emailService) SendRetentionWarning(toEmail, fullName string, lastActive, deletionDate time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Important: Data Retention Notice - Action Required")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Important: Data Retention Notice</h2>
			<p>Dear %s,</p>

			<p>We're reaching out regarding your account with our hiking platform.</p>

			<div style="background-color: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 5px; margin: 20px 0;">
				<h3>Account Inactivity Notice</h3>
				<p>Your account has been inactive since <strong>%s</strong>.</p>
				<p>In compliance with POPIA (Protection of Personal Information Act), we delete inactive accounts and associated data after an extended period of inactivity.</p>
			</div>

			<h3>What happens next?</h3>
			<ul>
				<li>Your data is currently scheduled for deletion on <strong>%s</strong></li>
				<li>To keep your account active, simply log in to our platform before this date</li>
				<li>If you no longer wish to use our services, no action is required</li>
			</ul>

			<div style="text-align: center; margin: 30px 0;">
				<a href="%s/login" style="background-color: #28a745; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">
					Login to Keep Account Active
				</a>
			</div>

			<p><strong>What data will be deleted?</strong></p>
			<ul>
				<li>Your member profile and account information</li>
				<li>Hike participation history</li>
				<li>Photos and feedback you've shared</li>
				<li>Payment records (anonymized after deletion)</li>
			</ul>

			<p>If you have any questions or concerns, please contact us at %s.</p>

			<p>Thank you for being part of our hiking community.</p>
			<p>Best regards,<br>The Hiking Portal Team</p>
		</div>
	`, fullName, lastActive.Format("2 January 2006"), deletionDate.Format("2 January 2006"), s.clientURL, s.supportEmail)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send retention warning to %s: %w", toEmail, err)
	}

	return nil
}
