package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// RegistryHandler serves condominium CRUD. Authentication happened at the
// gateway; this service trusts its internal network.
type RegistryHandler struct {
	service ports.RegistryService
}

func NewRegistryHandler(service ports.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

type residentSchema struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

type unitSchema struct {
	Number    string           `json:"number" validate:"required"`
	Floor     int              `json:"floor"`
	Residents []residentSchema `json:"residents,omitempty" validate:"dive"`
}

type condominiumRequest struct {
	Name    string       `json:"name" validate:"required"`
	Address string       `json:"address" validate:"required"`
	City    string       `json:"city"`
	Units   []unitSchema `json:"units,omitempty" validate:"dive"`
}

func (r condominiumRequest) toDomain() *domain.Condominium {
	condo := &domain.Condominium{
		Name:    r.Name,
		Address: r.Address,
		City:    r.City,
	}
	for _, u := range r.Units {
		unit := domain.Unit{Number: u.Number, Floor: u.Floor}
		for _, res := range u.Residents {
			unit.Residents = append(unit.Residents, domain.Resident{Name: res.Name, Email: res.Email, Phone: res.Phone})
		}
		condo.Units = append(condo.Units, unit)
	}
	return condo
}

func (h *RegistryHandler) Create(c echo.Context) error {
	var req condominiumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid_payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	condo, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, condo)
}

func (h *RegistryHandler) List(c echo.Context) error {
	condos, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"data": condos})
}

func (h *RegistryHandler) Get(c echo.Context) error {
	condo, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, condo)
}

func (h *RegistryHandler) Update(c echo.Context) error {
	var req condominiumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid_payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	condo := req.toDomain()
	condo.ID = c.Param("id")
	updated, err := h.service.Update(c.Request().Context(), condo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *RegistryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
