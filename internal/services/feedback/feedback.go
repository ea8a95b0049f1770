package feedback

import (
	"log/slog"

	"github.com/google/uuid"
)

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type Submission struct {
	Name    string
	Email   string
	Topic   string
	Message string
}

type FeedbackService struct {
	log          *slog.Logger
	mailer       MailProvider
	tasks        TaskExecutor
	supportEmail string
}

func New(log *slog.Logger, mailer MailProvider, tasks TaskExecutor, supportEmail string) *FeedbackService {
	return &FeedbackService{
		log:          log,
		mailer:       mailer,
		tasks:        tasks,
		supportEmail: supportEmail,
	}
}

// Submit queues the feedback mail for background delivery and returns a
// reference id the caller can quote in support conversations. Delivery
// failures are logged, not surfaced; the submission is already acknowledged.
func (s *FeedbackService) Submit(sub Submission) string {
	const op = "feedback.FeedbackService.Submit"
	reference := uuid.NewString()
	log := s.log.With("op", op, "reference", reference)
	s.tasks.Add(func() {
		data := map[string]string{
			"Reference": reference,
			"Name":      sub.Name,
			"Email":     sub.Email,
			"Topic":     sub.Topic,
			"Message":   sub.Message,
		}
		if err := s.mailer.Send(s.supportEmail, "feedback.tmpl", data); err != nil {
			log.Error("failed to deliver feedback mail", "error", err.Error())
			return
		}
		log.Info("feedback mail delivered")
	})
	return reference
}
