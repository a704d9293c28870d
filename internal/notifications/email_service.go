package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strconv"
	"time"
)

// EmailService sends booking confirmations to the front desk.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, message *BookingConfirmedMessage) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	FrontDesk string
	UseTLS    bool
	Timeout   time.Duration
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config *SMTPConfig
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}

	return &SMTPEmailService{config: config}, nil
}

// validateSMTPConfig validates SMTP configuration
func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}

	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}

	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}

	if config.FrontDesk == "" {
		return fmt.Errorf("front desk email is required")
	}

	return nil
}

// SendBookingConfirmation sends the confirmation details to the front desk
func (s *SMTPEmailService) SendBookingConfirmation(ctx context.Context, message *BookingConfirmedMessage) error {
	log.Printf("[SMTP] Sending booking confirmation %d to %s", message.ConfirmationNumber, s.config.FrontDesk)

	subject := fmt.Sprintf("Booking Confirmed - %d (Room %s)", message.ConfirmationNumber, message.RoomNumber)
	htmlBody, textBody := s.buildConfirmationContent(message)

	return s.SendHTML(ctx, s.config.FrontDesk, subject, htmlBody, textBody)
}

// SendHTML sends an HTML email
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("[SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS sends email with STARTTLS encryption
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	_, err = w.Write(message)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	// Create multipart message
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	// Text part
	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	// HTML part
	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

// buildConfirmationContent formats the booking details for the front desk
func (s *SMTPEmailService) buildConfirmationContent(m *BookingConfirmedMessage) (string, string) {
	arrival := m.Arrival.Format("2006-01-02")

	htmlBody := fmt.Sprintf(`
		<h2>Booking Confirmed</h2>
		<p>Confirmation Number: <strong>%d</strong></p>
		<p>Guest: %s</p>
		<p>Room: %s (%s)</p>
		<p>Arrival: %s</p>
		<p>Card: %s %s</p>
	`,
		m.ConfirmationNumber,
		m.GuestName,
		m.RoomNumber,
		m.RoomDescription,
		arrival,
		m.CardVendor,
		m.CardNumber,
	)

	textBody := fmt.Sprintf(
		"Booking Confirmed\n\nConfirmation Number: %d\nGuest: %s\nRoom: %s (%s)\nArrival: %s\nCard: %s %s\n",
		m.ConfirmationNumber,
		m.GuestName,
		m.RoomNumber,
		m.RoomDescription,
		arrival,
		m.CardVendor,
		m.CardNumber,
	)

	return htmlBody, textBody
}

// MockEmailService logs instead of sending; used when SMTP is not configured.
type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendBookingConfirmation logs a mock confirmation
func (s *MockEmailService) SendBookingConfirmation(ctx context.Context, message *BookingConfirmedMessage) error {
	log.Printf("[MOCK] Booking confirmation %d for room %s (guest %s)",
		message.ConfirmationNumber,
		message.RoomNumber,
		message.GuestName,
	)
	return nil
}

// SendHTML logs a mock HTML email
func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("[MOCK] To: %s, Subject: %s", to, subject)
	return nil
}
