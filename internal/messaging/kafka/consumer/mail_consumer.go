package consumer

import (
	"context"
	"encoding/json"
	"os"

	"go-fieldforce/internal/events"
	"go-fieldforce/internal/mailer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeMailRequested drains the mail topic and hands each event to the
// SMTP mailer. Send failures are logged and the message is not committed, so
// the group retries it; malformed payloads are committed and dropped.
func ConsumeMailRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	sender mailer.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.mail")
	log.Info("mail consumer started")

	baseURL := os.Getenv("APP_BASE_URL")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("mail consumer stopped")
				return
			}
			log.Error("fetch mail message failed", zap.Error(err))
			continue
		}

		var event events.MailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode mail_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		var subject, body string
		switch event.Kind {
		case events.MailKindVerifyEmail:
			subject, body = mailer.VerifyEmailBody(baseURL, event.Token)
		case events.MailKindPasswordReset:
			subject, body = mailer.PasswordResetBody(baseURL, event.Token)
		case events.MailKindStaffInvite:
			subject, body = mailer.StaffInviteBody(baseURL, event.Token)
		default:
			log.Warn("unknown mail kind, dropping", zap.String("kind", event.Kind))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.Send(event.Email, subject, body); err != nil {
			log.Error("send mail failed",
				zap.String("kind", event.Kind),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit mail message failed", zap.Error(err))
			continue
		}

		log.Info("mail sent",
			zap.String("kind", event.Kind),
			zap.String("user_id", event.UserID),
		)
	}
}
