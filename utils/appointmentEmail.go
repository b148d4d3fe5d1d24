package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"HFRegistry/models"

	"gopkg.in/gomail.v2"
)

// SendAppointmentDigest mails the list of patients with a scheduled
// follow-up visit to the clinic coordinator. SMTP settings come from the
// environment (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS).
func SendAppointmentDigest(recipient string, patients []models.Patient) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("HF registry: %d upcoming appointments", len(patients)))

	var b strings.Builder
	b.WriteString("Upcoming OPD follow-ups:\n\n")
	for i := range patients {
		p := &patients[i]
		fmt.Fprintf(&b, "%s  %s %s  %s  %s\n",
			p.HN, p.FirstName, p.LastName,
			p.NextAppointment.Date, orDash(p.NextAppointment.Location))
	}
	m.SetBody("text/plain", b.String())

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, fromEmail, os.Getenv("SMTP_PASS"))
	return d.DialAndSend(m)
}
