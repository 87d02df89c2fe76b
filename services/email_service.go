package services

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/model"
)

// EmailService sends transactional email via SMTP. Every public Notify
// method dispatches from a goroutine: delivery failures are logged and
// never surface as a failure of the triggering request.
type EmailService struct {
	host       string
	port       int
	username   string
	password   string
	from       string
	adminEmail string
	siteURL    string
}

// NewEmailService creates an email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		username:   cfg.SMTPUsername,
		password:   cfg.SMTPPassword,
		from:       cfg.SMTPFrom,
		adminEmail: cfg.AdminEmail,
		siteURL:    cfg.SiteURL,
	}
}

// IsConfigured checks if SMTP is properly configured
func (e *EmailService) IsConfigured() bool {
	return e.username != "" && e.password != ""
}

// NotifyApplicationReceived sends the applicant confirmation and the
// admissions office alert
func (e *EmailService) NotifyApplicationReceived(app *model.Application) {
	e.dispatch("application confirmation", app.GuardianEmail,
		fmt.Sprintf("Application Received - %s", app.ApplicationNumber),
		e.buildBody(
			fmt.Sprintf("Thank you for applying to Willow Gate School, %s", app.GuardianName),
			fmt.Sprintf(
				"We have received the application for %s %s (%s programme). Your application number is <strong>%s</strong>. Our admissions team will review it and contact you shortly.",
				app.FirstName, app.LastName, app.Program, app.ApplicationNumber,
			),
		),
	)

	e.dispatch("admissions alert", e.adminEmail,
		fmt.Sprintf("New Application %s", app.ApplicationNumber),
		e.buildBody(
			"New admissions application",
			fmt.Sprintf(
				"%s %s applied for the %s programme. Guardian: %s (%s).",
				app.FirstName, app.LastName, app.Program, app.GuardianName, app.GuardianEmail,
			),
		),
	)
}

// NotifyApplicationStatus tells the guardian about a status change
func (e *EmailService) NotifyApplicationStatus(app *model.Application) {
	e.dispatch("application status update", app.GuardianEmail,
		fmt.Sprintf("Application %s Update", app.ApplicationNumber),
		e.buildBody(
			fmt.Sprintf("Hello %s", app.GuardianName),
			fmt.Sprintf(
				"The status of application <strong>%s</strong> has changed to <strong>%s</strong>. If you have questions, reply to this email or call the admissions office.",
				app.ApplicationNumber, app.Status,
			),
		),
	)
}

// NotifyContactReceived acknowledges a contact or tour inquiry
func (e *EmailService) NotifyContactReceived(contact *model.Contact) {
	intro := "We have received your inquiry and will get back to you within two working days."
	if contact.InquiryType == model.InquiryTour {
		intro = "We have received your campus tour request and will confirm a time shortly."
	}

	e.dispatch("contact acknowledgement", contact.Email,
		"We received your message - Willow Gate School",
		e.buildBody(fmt.Sprintf("Hello %s", contact.Name), intro),
	)
}

// NotifyMessageReply forwards an admin response to the original sender
func (e *EmailService) NotifyMessageReply(msg *model.Message) {
	e.dispatch("message reply", msg.Email,
		fmt.Sprintf("Re: %s", msg.Subject),
		e.buildBody(
			fmt.Sprintf("Hello %s", msg.Name),
			msg.Response,
		),
	)
}

// NotifyNewsletterWelcome welcomes a new or returning subscriber
func (e *EmailService) NotifyNewsletterWelcome(sub *model.NewsletterSubscriber) {
	name := sub.Name
	if name == "" {
		name = "there"
	}

	e.dispatch("newsletter welcome", sub.Email,
		"Welcome to the Willow Gate newsletter",
		e.buildBody(
			fmt.Sprintf("Hello %s", name),
			fmt.Sprintf(
				"You are subscribed to news from Willow Gate School. You can update your preferences or unsubscribe at any time at %s.",
				e.siteURL,
			),
		),
	)
}

// dispatch sends one email from a goroutine, logging any failure
func (e *EmailService) dispatch(kind, to, subject, body string) {
	if !e.IsConfigured() {
		log.Printf("SMTP not configured, skipping %s email to %s", kind, to)
		return
	}

	go func() {
		if err := e.send(to, subject, body); err != nil {
			log.Printf("Failed to send %s email to %s: %v", kind, to, err)
			return
		}
		log.Printf("Sent %s email to %s", kind, to)
	}()
}

// buildBody wraps heading and content in the shared HTML shell
func (e *EmailService) buildBody(heading, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .container { background: #ffffff; border: 1px solid #e5e5e5; border-radius: 8px; padding: 32px; }
        h1 { color: #1d3d2f; font-size: 22px; margin-top: 0; }
        .footer { margin-top: 24px; padding-top: 16px; border-top: 1px solid #eee; font-size: 12px; color: #777; }
        .footer a { color: #1d3d2f; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
        <div class="footer">
            <p><strong>Willow Gate School</strong></p>
            <p><a href="%s">%s</a></p>
        </div>
    </div>
</body>
</html>`, heading, content, e.siteURL, e.siteURL)
}

// send delivers one message over SMTP with STARTTLS
func (e *EmailService) send(to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         fmt.Sprintf("Willow Gate School <%s>", e.from),
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	tlsConfig := &tls.Config{ServerName: e.host}
	if err := conn.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err := conn.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := conn.Mail(e.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write([]byte(message.String())); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return conn.Quit()
}
