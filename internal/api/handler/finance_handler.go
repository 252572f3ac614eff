package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// FinanceHandler serves the accounts-receivable placeholder endpoints.
type FinanceHandler struct {
	service ports.FinanceService
}

func NewFinanceHandler(service ports.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

type receivableRequest struct {
	CondominiumID string    `json:"condominium_id" validate:"required"`
	UnitNumber    string    `json:"unit_number" validate:"required"`
	Concept       string    `json:"concept" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	Currency      string    `json:"currency" validate:"required,len=3"`
	DueDate       time.Time `json:"due_date" validate:"required"`
}

func (h *FinanceHandler) CreateReceivable(c echo.Context) error {
	var req receivableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid_payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rcv, err := h.service.CreateReceivable(c.Request().Context(), &domain.Receivable{
		CondominiumID: req.CondominiumID,
		UnitNumber:    req.UnitNumber,
		Concept:       req.Concept,
		Amount:        req.Amount,
		Currency:      req.Currency,
		DueDate:       req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rcv)
}

func (h *FinanceHandler) ListReceivables(c echo.Context) error {
	rcvs, err := h.service.ListReceivables(c.Request().Context(), c.QueryParam("condominium_id"))
	if err != nil {
		return err
	}
	if rcvs == nil {
		rcvs = []domain.Receivable{}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rcvs})
}
