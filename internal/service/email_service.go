package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"
)

// EmailService sends transactional email through Amazon SES. When no from
// address is configured the service runs disabled and sends become no-ops,
// which keeps local development free of AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Info().Msg("email service disabled: EMAIL_FROM not configured")
		return &EmailService{appBaseURL: appBaseURL, enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("email service enabled")
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// invitationLink builds the public accept-invitation URL for a code
func (s *EmailService) invitationLink(code string) string {
	return fmt.Sprintf("%s/invitations/%s", strings.TrimSuffix(s.appBaseURL, "/"), code)
}

// SendInvitationEmail invites a teacher to co-manage a classroom
func (s *EmailService) SendInvitationEmail(toEmail, inviterName, classroomName, code string) error {
	subject := fmt.Sprintf("%s invited you to the classroom %q", inviterName, classroomName)
	link := s.invitationLink(code)
	body := fmt.Sprintf(
		"Hello,\n\n%s has invited you to help manage the classroom %q.\n\n"+
			"Accept the invitation here:\n%s\n\n"+
			"The invitation expires in 7 days.\n",
		inviterName, classroomName, link,
	)
	return s.send(toEmail, subject, body)
}

// SendProgressSummaryEmail mails a teacher a plain-text progress summary
func (s *EmailService) SendProgressSummaryEmail(toEmail, teacherName, summary string) error {
	subject := "Vocabulary progress summary"
	body := fmt.Sprintf("Hello %s,\n\nHere is the latest progress across your classrooms:\n\n%s\n", teacherName, summary)
	return s.send(toEmail, subject, body)
}

func (s *EmailService) send(toEmail, subject, body string) error {
	if !s.enabled {
		log.Debug().Str("to", toEmail).Str("subject", subject).Msg("email service disabled, skipping send")
		return nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(context.TODO(), input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	log.Info().Str("to", toEmail).Str("subject", subject).Msg("email sent")
	return nil
}
