package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dataeasy/dataeasy-api/internal/application/bulkload"
	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
)

// InventoryHandler maneja el ledger de movimientos y la carga/descarga masiva.
type InventoryHandler struct {
	ledger   *inventory.LedgerUseCase
	importer *bulkload.ImportUseCase
	exporter *bulkload.ExportUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, importer *bulkload.ImportUseCase, exporter *bulkload.ExportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, importer: importer, exporter: exporter}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "producto, tipo y cantidad"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Security     BearerAuth
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.ledger.RecordMovement(c.Context(), inventory.RecordMovementInput{
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Reference: in.Reference,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListMovements godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  false  "filtra por producto"
// @Param        limit       query  int     false  "máximo de filas (default 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Security     BearerAuth
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()

	movements, err := h.ledger.ListMovements(c.Context(), c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento y reconciliar stock (solo admin)
// @Tags         inventory
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.ledger.DeleteMovement(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Carga masiva desde CSV (solo admin)
// @Description  Todo o nada: si alguna fila es inválida no se aplica ninguna.
// @Tags         inventory
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "CSV con columnas nombre_producto, categoria, marca, stock_actual, stock_minimo"
// @Success      200  {object}  dto.ImportSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere el archivo CSV en el campo 'archivo'"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer file.Close()

	summary, err := h.importer.ImportCSV(c.Context(), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Export godoc
// @Summary      Exportar inventario a CSV
// @Description  Los encabezados calzan con los de la importación, por lo que el
// @Description  archivo exportado puede recargarse sin cambios.
// @Tags         inventory
// @Produce      text/csv
// @Success      200  {file}  file
// @Security     BearerAuth
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.exporter.ExportCSV(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Date:      m.Date,
		Reference: m.Reference,
	}
}
