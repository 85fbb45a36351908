package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends announcement copies via Amazon SES
type EmailService struct {
	client      *sesv2.Client
	fromEmail   string
	fromName    string
	notifyEmail string
	enabled     bool
}

// NewEmailService creates a new email service. The service runs disabled
// when either the sender or the notify address is unset.
func NewEmailService(awsRegion, fromEmail, fromName, notifyEmail string) (*EmailService, error) {
	if fromEmail == "" || notifyEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or NOTIFY_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, notify=%s, region=%s", fromEmail, notifyEmail, awsRegion)

	return &EmailService{
		client:      client,
		fromEmail:   fromEmail,
		fromName:    fromName,
		notifyEmail: notifyEmail,
		enabled:     true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendAnnouncement emails a copy of a broadcast announcement to the
// configured notify address.
func (s *EmailService) SendAnnouncement(ctx context.Context, message string) error {
	if !s.enabled {
		log.Println("Skipping email send (service disabled): announcement copy")
		return nil
	}

	subject := "New announcement published"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>New Announcement</h1>
		</div>
		<div class="content">
			<p>The following announcement was just published to all students:</p>
			<blockquote>%s</blockquote>
		</div>
		<div class="footer">
			<p>This is an automated email from VocaMaster. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, html.EscapeString(message))

	textBody := fmt.Sprintf(`The following announcement was just published to all students:

%s

---
This is an automated email from VocaMaster. Please do not reply.
`, message)

	return s.sendEmail(ctx, s.notifyEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
