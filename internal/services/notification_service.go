package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/metrics"
)

// NotificationServiceImpl implements domain.NotificationService. Marketing
// batches are best-effort: a recipient whose email or SMS bounces is
// counted as failed and the batch moves on.
type NotificationServiceImpl struct {
	userRepo domain.UserRepository
	mailSvc  domain.MailSender
	smsSvc   domain.SMSSender
	logger   *slog.Logger
}

// NewNotificationService creates a new marketing notification service
func NewNotificationService(userRepo domain.UserRepository, mailSvc domain.MailSender, smsSvc domain.SMSSender, logger *slog.Logger) domain.NotificationService {
	return &NotificationServiceImpl{
		userRepo: userRepo,
		mailSvc:  mailSvc,
		smsSvc:   smsSvc,
		logger:   logger,
	}
}

// SendMarketing implements domain.NotificationService. With no explicit
// recipient list the campaign goes to every active user; an explicit list
// narrows it to those addresses (restricted to known active users). When
// SMSBody is set each recipient with a phone on file additionally gets an
// SMS, counted with the same per-recipient bookkeeping.
func (s *NotificationServiceImpl) SendMarketing(ctx context.Context, campaign *domain.MarketingCampaign) (*domain.MarketingDispatch, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}

	if len(campaign.Recipients) > 0 {
		wanted := make(map[string]bool, len(campaign.Recipients))
		for _, email := range campaign.Recipients {
			wanted[email] = true
		}
		filtered := users[:0]
		for _, u := range users {
			if wanted[u.Email] {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	dispatch := &domain.MarketingDispatch{
		ID:         uuid.NewString(),
		Recipients: len(users),
	}

	for _, u := range users {
		failed := false

		if err := s.mailSvc.SendMarketingEmail(u.Email, campaign.Subject, campaign.Body); err != nil {
			failed = true
			s.logger.Warn("marketing email failed",
				slog.String("dispatch_id", dispatch.ID),
				slog.Uint64("user_id", uint64(u.ID)),
				slog.Any("error", err),
			)
		}

		if campaign.SMSBody != "" && u.Phone != "" {
			if err := s.smsSvc.SendMarketingSMS(u.Phone, campaign.SMSBody); err != nil {
				failed = true
				s.logger.Warn("marketing sms failed",
					slog.String("dispatch_id", dispatch.ID),
					slog.Uint64("user_id", uint64(u.ID)),
					slog.Any("error", err),
				)
			}
		}

		if failed {
			dispatch.Failed++
			metrics.MarketingSends.WithLabelValues("failure").Inc()
		} else {
			dispatch.Sent++
			metrics.MarketingSends.WithLabelValues("success").Inc()
		}
	}

	s.logger.Info("marketing dispatch finished",
		slog.String("event", string(domain.MarketingDispatchEvent)),
		slog.String("dispatch_id", dispatch.ID),
		slog.Int("recipients", dispatch.Recipients),
		slog.Int("sent", dispatch.Sent),
		slog.Int("failed", dispatch.Failed),
	)
	return dispatch, nil
}
