// internal/notify/notifier.go

// Package notify delivers submission confirmations over SES email and SNS
// SMS. Both channels are optional; a notifier with neither configured is a
// no-op.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	awsclient "social-support-portal/internal/common/aws"
	"social-support-portal/internal/common/config"
	"social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
)

type Notifier struct {
	cfg    config.NotificationConfig
	email  *awsclient.SESClient
	sms    *awsclient.SNSClient
	logger logger.Logger
}

// New builds a Notifier from configuration. AWS clients are only created
// for enabled channels; client construction failures disable the channel
// rather than failing startup.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) *Notifier {
	n := &Notifier{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notifier"}),
	}

	if cfg.Email.Enabled {
		client, err := awsclient.NewSESClient(ctx, cfg.AWS.Region)
		if err != nil {
			n.logger.Warn("email channel disabled", map[string]interface{}{"error": err.Error()})
		} else {
			n.email = client
		}
	}

	if cfg.SMS.Enabled {
		client, err := awsclient.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			n.logger.Warn("sms channel disabled", map[string]interface{}{"error": err.Error()})
		} else {
			n.sms = client
		}
	}

	return n
}

// SendConfirmation notifies the applicant that their submission was
// accepted. Each channel fails independently; the first failure is returned
// after all channels were attempted.
func (n *Notifier) SendConfirmation(ctx context.Context, app models.Application, personal models.PersonalSection) error {
	var firstErr error

	if n.email != nil && personal.Email != "" {
		if err := n.sendEmail(ctx, app, personal); err != nil {
			n.logger.Warn("confirmation email failed", map[string]interface{}{"error": err.Error()})
			firstErr = err
		}
	}

	if n.sms != nil && personal.Phone != "" {
		if err := n.sendSMS(ctx, app, personal); err != nil {
			n.logger.Warn("confirmation sms failed", map[string]interface{}{"error": err.Error()})
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (n *Notifier) sendEmail(ctx context.Context, app models.Application, personal models.PersonalSection) error {
	subject := fmt.Sprintf("Application received: %s", app.Reference)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour financial support application has been received.\nReference: %s\nSubmitted: %s\n\nTrack your application on the portal. For help call %s.",
		personal.Name, app.Reference, app.SubmittedDate, "800 555")

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.cfg.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{personal.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("email", err)
	}
	return nil
}

func (n *Notifier) sendSMS(ctx context.Context, app models.Application, personal models.PersonalSection) error {
	message := fmt.Sprintf("Your application %s has been received. Track it on the portal.", app.Reference)

	input := &sns.PublishInput{
		PhoneNumber: aws.String(personal.Phone),
		Message:     aws.String(message),
	}

	_, err := n.sms.Publish(ctx, input)
	if err != nil {
		return errors.NewNotificationSendFailedError("sms", err)
	}
	return nil
}
