package mocks

import (
	"context"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendMarketingFunc func(ctx context.Context, campaign *domain.MarketingCampaign) (*domain.MarketingDispatch, error)
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendMarketing fans a campaign out to its recipients
func (m *MockNotificationService) SendMarketing(ctx context.Context, campaign *domain.MarketingCampaign) (*domain.MarketingDispatch, error) {
	if m.SendMarketingFunc != nil {
		return m.SendMarketingFunc(ctx, campaign)
	}
	// Default behavior: report every recipient delivered
	return &domain.MarketingDispatch{
		ID:         "mock_dispatch_id",
		Recipients: len(campaign.Recipients),
		Sent:       len(campaign.Recipients),
		Failed:     0,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
