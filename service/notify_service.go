package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	model "github.com/Ekene07/CorrTrack/models"
)

// notifyCompletion emails the registry desk when a correspondence is marked
// completed. Notification is best effort: missing SMTP config or a send
// failure is logged and swallowed.
func (s *CorrespondenceService) notifyCompletion(corr *model.Correspondence, actor model.User) {
	to := os.Getenv("REGISTRY_NOTIFY_EMAIL")
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if to == "" || from == "" || smtpHost == "" {
		log.Printf("[notifyCompletion] SMTP not configured, skipping notification for %s", corr.ReferenceNumber)
		return
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	subject := fmt.Sprintf("Correspondence Completed: %s", corr.ReferenceNumber)
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Correspondence Completed</h2>
		<p>The following correspondence has been treated and marked completed:</p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Subject:</strong> %s</li>
			<li><strong>Priority:</strong> %s</li>
			<li><strong>Completed by:</strong> %s</li>
		</ul>
		<p>It is now eligible for archiving.</p>
	</body>
	</html>
`, corr.ReferenceNumber, corr.Subject, corr.Priority, actor.FullName())

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
		body)

	auth := smtp.PlainAuth("", from, password, smtpHost)
	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message); err != nil {
		log.Printf("[notifyCompletion] Error sending email for %s: %v", corr.ReferenceNumber, err)
		return
	}
	log.Printf("[notifyCompletion] Email sent to %s for %s", to, corr.ReferenceNumber)
}
