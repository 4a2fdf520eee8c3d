package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	"housing/config"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/service"
)

// smtpSender delivers verification code emails over plain SMTP with AUTH.
// In dev mode the message is logged instead of sent so local development
// does not need mail credentials.
type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	devMode  bool
	logger   *slog.Logger
}

// NewSMTPSender creates the SMTP mail sender from configuration. Without
// an email section the sender runs in dev mode.
func NewSMTPSender(cfg *config.Config, logger *slog.Logger) service.EmailSender {
	if cfg.Email == nil {
		return &smtpSender{devMode: true, logger: logger}
	}

	return &smtpSender{
		host:     cfg.Email.SMTP.Host,
		port:     cfg.Email.SMTP.Port,
		username: cfg.Email.SMTP.Username,
		password: cfg.Email.SMTP.Password,
		from:     cfg.Email.SMTP.From,
		devMode:  cfg.Email.DevMode,
		logger:   logger,
	}
}

// SendVerificationCode sends the signup verification code to the address.
// Delivery failures surface as 500s rather than leaving the caller
// believing a code is in flight.
func (s *smtpSender) SendVerificationCode(ctx context.Context, to, code string) error {
	if s.devMode {
		s.logger.InfoContext(ctx, "dev mode: skipping mail delivery",
			slog.String("to", to),
			slog.String("code", code))

		return nil
	}

	msg := buildCodeMessage(s.from, to, code)
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to send verification mail",
			slog.String("to", to),
			slog.Any("error", err))

		return domainerrors.ErrMailDeliveryFailed.WrapMessage(err.Error())
	}

	return nil
}

func buildCodeMessage(from, to, code string) []byte {
	body := fmt.Sprintf(`<html><body>
<h2>Signup verification</h2>
<p>Your verification code is:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px;">%s</p>
<p>The code expires in 5 minutes.</p>
</body></html>`, code)

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Signup verification code\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n", from, to)

	return []byte(headers + body)
}
