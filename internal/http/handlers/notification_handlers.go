package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// NotificationHandlers handles admin-triggered notification requests
type NotificationHandlers struct {
	notifSvc domain.NotificationService
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(notifSvc domain.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notifSvc: notifSvc}
}

// MarketingRequest represents a marketing campaign request. Recipients
// optionally narrows the audience to explicit email addresses; sms_body,
// when present, additionally sends an SMS to each recipient with a phone.
type MarketingRequest struct {
	Subject    string   `json:"subject" binding:"required"`
	Body       string   `json:"body" binding:"required"`
	SMSBody    string   `json:"sms_body"`
	Recipients []string `json:"recipients"`
}

// SendMarketing handles dispatching a marketing campaign to active users
func (h *NotificationHandlers) SendMarketing(c *gin.Context) {
	var req MarketingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dispatch, err := h.notifSvc.SendMarketing(c.Request.Context(), &domain.MarketingCampaign{
		Subject:    req.Subject,
		Body:       req.Body,
		SMSBody:    req.SMSBody,
		Recipients: req.Recipients,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch campaign"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dispatch})
}
