package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dataeasy/dataeasy-api/internal/application/analytics"
	"github.com/dataeasy/dataeasy-api/internal/application/dto"
)

// AnalyticsHandler maneja el dashboard y las estadísticas.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler de analítica.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen para el home
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Security     BearerAuth
// @Router       /api/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Métricas y series para gráficos
// @Tags         analytics
// @Produce      json
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD (default: 180 días atrás)"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.StatisticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/statistics [get]
func (h *AnalyticsHandler) Statistics(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("fecha_inicio"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_inicio inválida, use YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c.Query("fecha_fin"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_fin inválida, use YYYY-MM-DD"})
	}

	out, err := h.uc.Statistics(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery convierte un query param YYYY-MM-DD. Vacío retorna el cero de
// time.Time para que el caso de uso aplique su rango por defecto.
func parseDateQuery(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
