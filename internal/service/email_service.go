package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type mailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type EmailService struct {
	mail   mailSender
	logger *zap.Logger
}

func NewEmailService(mail mailSender, logger *zap.Logger) *EmailService {
	return &EmailService{
		mail:   mail,
		logger: logger,
	}
}

func (s *EmailService) SendSignupOTP(ctx context.Context, email, code string) error {
	html := fmt.Sprintf(`<h1>Your OTP for Estate Registration</h1>
<p>Your OTP is: <strong>%s</strong></p>
<p>This OTP will expire in 5 minutes.</p>`, code)

	return s.mail.Send(ctx, email,
		"Your Estate Registration OTP",
		fmt.Sprintf("Your OTP is: %s", code),
		html,
	)
}

func (s *EmailService) SendResetOTP(ctx context.Context, email, code string) error {
	html := fmt.Sprintf(`<h1>Password Reset Request</h1>
<p>Your OTP for password reset is: <strong>%s</strong></p>
<p>This OTP will expire in 5 minutes.</p>`, code)

	return s.mail.Send(ctx, email,
		"Password Reset OTP",
		fmt.Sprintf("Your password reset OTP is: %s", code),
		html,
	)
}

// SendTest delivers an arbitrary message, used by the email health-check
// endpoint.
func (s *EmailService) SendTest(ctx context.Context, to, subject, text, html string) error {
	if err := s.mail.Send(ctx, to, subject, text, html); err != nil {
		s.logger.Error("Test email failed", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}
