package mailer

import (
	"fmt"
	"log"
	"os"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/nkapoor/interview-coach-api/internal/models"
)

const attemptTimeout = 10 * time.Second

// TransportProfile is one SMTP endpoint to try. Profiles are attempted in
// order until one delivers; typically a STARTTLS port with an SSL fallback.
type TransportProfile struct {
	Port int
	SSL  bool
}

type Config struct {
	Host       string
	Username   string
	Password   string
	From       string
	AdminEmail string
	Profiles   []TransportProfile

	QuestionBankPath     string
	QuestionBankFallback string
	QuestionBankFilename string
}

type BookingPayload struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Course      string             `json:"course"`
	ScheduledAt time.Time          `json:"scheduled_at"`
	PackageType models.PackageType `json:"package_type"`
	Status      string             `json:"status,omitempty"`
	MeetingLink string             `json:"meeting_link,omitempty"`
}

type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = []TransportProfile{{Port: 587, SSL: false}, {Port: 465, SSL: true}}
	}
	return &Mailer{cfg: cfg}
}

// SendBookingNotification mails the admin about a new or resent booking.
// Entitled packages get the question-bank PDF attached when it can be found.
func (m *Mailer) SendBookingNotification(p BookingPayload) error {
	if m.cfg.Host == "" || m.cfg.AdminEmail == "" {
		log.Println("[Mailer] notification skipped: missing SMTP host or admin email")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from()); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(m.cfg.AdminEmail); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(fmt.Sprintf("New HR Mock Interview Booking – %s", p.Name))

	formatted := p.ScheduledAt.Format("Monday, 2 January 2006 at 3:04 PM")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"New HR Interview booking\n\nName: %s\nCourse: %s\nPhone: %s\nEmail: %s\nScheduled: %s",
		p.Name, p.Course, p.Phone, p.Email, formatted,
	))
	msg.AddAlternativeString(mail.TypeTextHTML, fmt.Sprintf(
		"<h2>New Booking</h2><p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p><p><strong>Course:</strong> %s</p><p><strong>Preferred Slot:</strong> %s</p>",
		p.Name, p.Email, p.Phone, p.Course, formatted,
	))

	if p.PackageType.IncludesQuestionBank() {
		if path, ok := m.questionBankFile(); ok {
			msg.AttachFile(path, mail.WithFileName(m.cfg.QuestionBankFilename))
		} else {
			log.Println("[Mailer] question bank PDF not found, sending without attachment")
		}
	}

	return m.deliver(msg)
}

// SendBookingUpdate mails the admin and the customer about a schedule or
// status change.
func (m *Mailer) SendBookingUpdate(p BookingPayload) error {
	if m.cfg.Host == "" {
		log.Println("[Mailer] update notification skipped: missing SMTP host")
		return nil
	}

	recipients := []string{}
	if m.cfg.AdminEmail != "" {
		recipients = append(recipients, m.cfg.AdminEmail)
	}
	if p.Email != "" {
		recipients = append(recipients, p.Email)
	}
	if len(recipients) == 0 {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from()); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(fmt.Sprintf("Booking updated – %s (%s)", p.Name, p.Status))

	formatted := p.ScheduledAt.Format("Monday, 2 January 2006 at 3:04 PM")
	meetingLink := "Not set"
	if p.MeetingLink != "" {
		meetingLink = fmt.Sprintf(`<a href="%s">%s</a>`, p.MeetingLink, p.MeetingLink)
	}
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Booking updated\n\nName: %s\nStatus: %s\nPreferred Slot: %s\nMeeting Link: %s",
		p.Name, p.Status, formatted, defaultIfEmpty(p.MeetingLink, "Not set"),
	))
	msg.AddAlternativeString(mail.TypeTextHTML, fmt.Sprintf(
		"<h2>Booking Updated</h2><p><strong>Name:</strong> %s</p><p><strong>Status:</strong> %s</p><p><strong>Preferred Slot:</strong> %s</p><p><strong>Meeting Link:</strong> %s</p>",
		p.Name, p.Status, formatted, meetingLink,
	))

	return m.deliver(msg)
}

// deliver tries each transport profile in order, stopping at the first
// success. Each attempt is bounded by its own timeout so an unreachable mail
// host cannot hang the sender.
func (m *Mailer) deliver(msg *mail.Msg) error {
	var lastErr error
	for _, profile := range m.cfg.Profiles {
		opts := []mail.Option{
			mail.WithPort(profile.Port),
			mail.WithTimeout(attemptTimeout),
		}
		if m.cfg.Username != "" && m.cfg.Password != "" {
			opts = append(opts,
				mail.WithSMTPAuth(mail.SMTPAuthPlain),
				mail.WithUsername(m.cfg.Username),
				mail.WithPassword(m.cfg.Password),
			)
		}
		if profile.SSL {
			opts = append(opts, mail.WithSSL())
		} else {
			opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
		}

		client, err := mail.NewClient(m.cfg.Host, opts...)
		if err != nil {
			lastErr = err
			continue
		}
		if err := client.DialAndSend(msg); err != nil {
			log.Printf("[Mailer] delivery via port %d failed: %v", profile.Port, err)
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("all mail transports failed: %w", lastErr)
}

func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	if m.cfg.AdminEmail != "" {
		return m.cfg.AdminEmail
	}
	return m.cfg.Username
}

// questionBankFile returns the first existing candidate path for the
// question-bank PDF.
func (m *Mailer) questionBankFile() (string, bool) {
	for _, candidate := range []string{m.cfg.QuestionBankPath, m.cfg.QuestionBankFallback} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func defaultIfEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
