// Package mail sends reminder emails over SMTP. When the transport is not
// configured the sender degrades to a logged no-op so that environments
// without an SMTP account (local development, CI) still run the full
// reminder pipeline.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
)

// reminderTemplate renders the reminder email body. Optional fields are
// omitted entirely rather than rendered empty.
const reminderTemplate = `<div style="font-family: sans-serif; max-width: 600px;">
  <h2 style="color: #2c3e50;">Task Reminder</h2>
  <p>Your task <strong>{{.Title}}</strong> needs attention.</p>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <ul>
    <li>Priority: {{.Priority}}</li>
    {{if .DueDate}}<li>Due: {{.DueDate}}</li>{{end}}
  </ul>
  {{if .Notes}}<p style="color: #7f8c8d;">Notes: {{.Notes}}</p>{{end}}
</div>`

var reminderBody = template.Must(template.New("reminder").Parse(reminderTemplate))

// reminderData is the template payload for a reminder email.
type reminderData struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
	Notes       string
}

// SMTPSender delivers reminder emails through an SMTP relay using go-mail.
type SMTPSender struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPSender creates an SMTPSender from the mail configuration. When the
// configuration has no host or username the returned sender is unconfigured:
// sends succeed without contacting any server and are logged at warn level.
func NewSMTPSender(cfg config.MailConfig, log *slog.Logger) (*SMTPSender, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "mail_sender"))

	if cfg.Host == "" || cfg.Username == "" {
		log.Warn("mail transport not configured, reminder emails will be skipped")
		return &SMTPSender{logger: log}, nil
	}

	client, err := gomail.NewClient(
		cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPSender{
		client: client,
		from:   from,
		logger: log,
	}, nil
}

// Configured reports whether the sender has a usable SMTP transport.
func (s *SMTPSender) Configured() bool {
	return s.client != nil
}

// SendTaskReminder sends a reminder email for the given task to the given
// address. An unconfigured sender logs and returns nil so the caller marks
// the reminder handled instead of retrying forever against a transport that
// will never exist.
func (s *SMTPSender) SendTaskReminder(ctx context.Context, to string, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.client == nil {
		log.Warn("mail transport not configured, skipping reminder email",
			slog.String("task_id", task.ID.String()),
			slog.String("to", to))
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Task Reminder: %s", task.Title))

	body, err := renderReminderBody(task)
	if err != nil {
		return fmt.Errorf("failed to render reminder body: %w", err)
	}
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	log.Info("reminder email sent",
		slog.String("task_id", task.ID.String()),
		slog.String("to", to))
	return nil
}

func renderReminderBody(task *domain.Task) (string, error) {
	data := reminderData{
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Notes:       task.Notes,
	}
	if task.DueDate != nil {
		data.DueDate = task.DueDate.Format(time.RFC1123)
	}

	var buf bytes.Buffer
	if err := reminderBody.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
