package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// MessagingHandler accepts outbound notifications for queued delivery.
type MessagingHandler struct {
	service ports.MessagingService
}

func NewMessagingHandler(service ports.MessagingService) *MessagingHandler {
	return &MessagingHandler{service: service}
}

type sendRequest struct {
	// ID lets clients resend idempotently; generated when absent.
	ID        string `json:"id,omitempty"`
	Recipient string `json:"recipient" validate:"required"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body" validate:"required"`
}

type sendResponse struct {
	Queued bool   `json:"queued"`
	ID     string `json:"id"`
}

// SendWhatsApp queues a WhatsApp message.
func (h *MessagingHandler) SendWhatsApp(c echo.Context) error {
	return h.send(c, domain.ChannelWhatsApp)
}

// SendEmail queues an email message.
func (h *MessagingHandler) SendEmail(c echo.Context) error {
	return h.send(c, domain.ChannelEmail)
}

func (h *MessagingHandler) send(c echo.Context, channel domain.Channel) error {
	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid_payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Enqueue(c.Request().Context(), domain.Message{
		ID:        req.ID,
		Channel:   channel,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, sendResponse{Queued: true, ID: msg.ID})
}
