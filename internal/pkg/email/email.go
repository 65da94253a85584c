package email

import (
	"context"
	"fmt"
)

// Message is a single outbound email
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Service is any service that can deliver emails
type Service interface {
	Send(ctx context.Context, msg *Message) error
}

// NewPasswordResetMessage builds the OTP email sent by the forgot-password
// flow. The code expires after the stated window.
func NewPasswordResetMessage(toEmail, toName, code string) *Message {
	return &Message{
		ToEmail:  toEmail,
		ToName:   toName,
		Subject:  "Your EduFlow password reset code",
		TextBody: fmt.Sprintf("Hello %s,\n\nYour password reset code is %s. It expires in 10 minutes.\n\nIf you did not request a reset, ignore this email.", toName, code),
		HTMLBody: fmt.Sprintf(`
			<html>
			<body>
				<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
					<h2 style="color: #333;">Password Reset</h2>
					<p>Hello %s,</p>
					<p>Your password reset code is:</p>
					<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">%s</p>
					<p>The code expires in 10 minutes.</p>
					<p>If you did not request a reset, ignore this email.</p>
					<p>Best regards,<br>The EduFlow Team</p>
				</div>
			</body>
			</html>
		`, toName, code),
	}
}

// NewAccountCreatedMessage builds the email sent when an admin issues an
// account with a generated temporary password.
func NewAccountCreatedMessage(toEmail, toName, tempPassword string) *Message {
	return &Message{
		ToEmail:  toEmail,
		ToName:   toName,
		Subject:  "Your EduFlow account",
		TextBody: fmt.Sprintf("Hello %s,\n\nAn EduFlow account has been created for you. Your temporary password is %s. Please log in and change it.", toName, tempPassword),
		HTMLBody: fmt.Sprintf(`
			<html>
			<body>
				<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
					<h2 style="color: #333;">Welcome to EduFlow!</h2>
					<p>Hello %s,</p>
					<p>An account has been created for you. Your temporary password is:</p>
					<p style="font-size: 20px; font-weight: bold;">%s</p>
					<p>Please log in and change it as soon as possible.</p>
					<p>Best regards,<br>The EduFlow Team</p>
				</div>
			</body>
			</html>
		`, toName, tempPassword),
	}
}
