package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

var emailCheck = validator.New()

type MessageService struct {
	repo ports.MessageRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewMessageService(repo ports.MessageRepository, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, log: log, now: time.Now}
}

// Submit stores a contact form message as unread.
func (s *MessageService) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	ve := &domain.ValidationError{}
	if blank(in.Name) {
		ve.Add("name", "name is required")
	}
	if blank(in.Email) {
		ve.Add("email", "email is required")
	} else if emailCheck.Var(in.Email, "email") != nil {
		ve.Add("email", "email must be a valid email")
	}
	if blank(in.Message) {
		ve.Add("message", "message is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		Name:           in.Name,
		Email:          in.Email,
		Message:        in.Message,
		AttachmentURL:  in.AttachmentURL,
		AttachmentName: in.AttachmentName,
		Read:           false,
		CreatedAt:      nowMillis(s.now),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		s.log.Error().Err(err).Msg("failed to store contact message")
		return nil, err
	}

	s.log.Info().
		Int64("message_id", msg.ID).
		Bool("attachment", msg.AttachmentURL != nil).
		Msg("contact message received")
	return msg, nil
}

func (s *MessageService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.repo.List(ctx)
}

// MarkAsRead is idempotent: marking an already read message succeeds.
func (s *MessageService) MarkAsRead(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *MessageService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("message_id", id).Msg("contact message deleted")
	return nil
}
