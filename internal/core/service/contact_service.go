package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/metrics"
	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
)

// ContactInput is a validated contact-form submission.
type ContactInput struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	UserEmail string
}

// ContactService stores contact messages. A nil repository means messages
// are only logged.
type ContactService struct {
	repo  ports.ContactRepository
	guard ports.SubmitGuard
	log   zerolog.Logger
	now   func() time.Time
}

func NewContactService(repo ports.ContactRepository, guard ports.SubmitGuard, log zerolog.Logger) *ContactService {
	return &ContactService{
		repo:  repo,
		guard: guard,
		log:   log.With().Str("component", "contact_service").Logger(),
		now:   time.Now,
	}
}

// Submit stores the message unless the same session posted identical content
// within the guard window. It reports whether the message was new.
func (s *ContactService) Submit(ctx context.Context, sessionID string, in ContactInput) (bool, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Message) == "" {
		return false, domain.ErrContactInvalid
	}

	if s.guard != nil {
		first, err := s.guard.First(ctx, sessionID, "contact", fingerprint(in))
		if err != nil {
			s.log.Warn().Err(err).Msg("submit guard unavailable, storing anyway")
		} else if !first {
			metrics.ContactMessagesTotal.WithLabelValues("duplicate").Inc()
			return false, nil
		}
	}

	msg := &domain.ContactMessage{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   in.Message,
		UserEmail: in.UserEmail,
		CreatedAt: s.now().UTC(),
	}

	if s.repo == nil {
		s.log.Info().Str("email", msg.Email).Str("subject", msg.Subject).Msg("contact message received (no repository configured)")
		metrics.ContactMessagesTotal.WithLabelValues("logged").Inc()
		return true, nil
	}

	if err := s.repo.Insert(ctx, msg); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("store contact message: %w", err)
	}

	metrics.ContactMessagesTotal.WithLabelValues("stored").Inc()
	s.log.Info().Str("id", msg.ID).Str("email", msg.Email).Msg("contact message stored")
	return true, nil
}

func fingerprint(in ContactInput) string {
	h := sha256.New()
	for _, part := range []string{in.Name, in.Email, in.Subject, in.Message} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}
