package utils

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// EmailService sends the submission-outcome notice. Best-effort only:
// a failed or unconfigured send never changes the API response.
type EmailService struct {
	Host string
	Port int
	User string
	Pass string
}

func NewEmailService(host string, port int, user, pass string) *EmailService {
	return &EmailService{Host: host, Port: port, User: user, Pass: pass}
}

// Configured reports whether SMTP credentials are present.
func (s *EmailService) Configured() bool {
	return s.Host != "" && s.User != ""
}

// SendApplicationOutcome emails the applicant their decision. For an
// approval the voter ID is included; for a rejection the remarks are.
func (s *EmailService) SendApplicationOutcome(to, applicationID, status, voterID, remarks string) {
	if !s.Configured() || to == "" {
		return
	}

	subject := fmt.Sprintf("Voter Registration %s (%s)", status, applicationID)
	var body string
	if voterID != "" {
		body = fmt.Sprintf("Your voter registration application %s has been approved.\nYour Voter ID is: %s\n", applicationID, voterID)
	} else {
		body = fmt.Sprintf("Your voter registration application %s has been rejected.\nRemarks: %s\n", applicationID, remarks)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send outcome email for %s: %v", applicationID, err)
	}
}
