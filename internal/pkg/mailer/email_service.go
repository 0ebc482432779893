package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSubmissionNotice(toEmail, name string, applicationId, amount int64, purpose string) error
	SendDecisionNotice(toEmail, name string, applicationId int64, status string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendSubmissionNotice(toEmail, name string, applicationId, amount int64, purpose string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Loan Application Has Been Received")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Application Received</h2>
			<p>Dear %s,</p>
			<p>Your application #%d for a %s of ₹%d has passed the initial eligibility checks and is now pending final review.</p>
			<p>We will notify you as soon as a decision is made.</p>
		</div>
	`, name, applicationId, purpose, amount)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendDecisionNotice(toEmail, name string, applicationId int64, status string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your Loan Application Has Been %s", status))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Application %s</h2>
			<p>Dear %s,</p>
			<p>Your loan application #%d has been <strong>%s</strong>.</p>
			<p>If you have any questions, please contact your branch.</p>
		</div>
	`, status, name, applicationId, status)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
