package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "StudyHive"
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #4CAF50; margin: 0;">StudyHive</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 StudyHive. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)
	addr := smtpHost + ":" + smtpPort

	if err := smtp.SendMail(addr, auth, emailFrom, to, []byte(message)); err != nil {
		log.Printf("Failed to send email to %v: %v", to, err)
		return err
	}

	return nil
}

// SendBookingConfirmation notifies a learner that their booking was created
func SendBookingConfirmation(to, learnerName, tutorName, date, clock string, duration int) error {
	subject := "Your tutoring session is booked"
	body := emailHeader + fmt.Sprintf(`
		<h3>Hi %s,</h3>
		<p>Your session with <strong>%s</strong> has been requested.</p>
		<ul>
			<li>Date: %s</li>
			<li>Time: %s</li>
			<li>Duration: %d minutes</li>
		</ul>
		<p>The session is pending until your tutor confirms it.</p>
	`, learnerName, tutorName, date, clock, duration) + emailFooter

	return sendEmail([]string{to}, subject, body)
}

// SendBookingCancelled notifies a learner that a booking was cancelled
func SendBookingCancelled(to, learnerName, tutorName, date, clock string) error {
	subject := "Your tutoring session was cancelled"
	body := emailHeader + fmt.Sprintf(`
		<h3>Hi %s,</h3>
		<p>Your session with <strong>%s</strong> on %s at %s has been cancelled.</p>
	`, learnerName, tutorName, date, clock) + emailFooter

	return sendEmail([]string{to}, subject, body)
}

// SendBookingRescheduled notifies a learner of the new session slot
func SendBookingRescheduled(to, learnerName, tutorName, date, clock string) error {
	subject := "Your tutoring session was rescheduled"
	body := emailHeader + fmt.Sprintf(`
		<h3>Hi %s,</h3>
		<p>Your session with <strong>%s</strong> has moved to %s at %s.</p>
	`, learnerName, tutorName, date, clock) + emailFooter

	return sendEmail([]string{to}, subject, body)
}
