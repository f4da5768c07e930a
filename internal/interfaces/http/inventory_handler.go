package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/application/dto"
)

// InventoryHandler maneja la subida y la consulta del inventario limpio.
type InventoryHandler struct {
	uc *appanalytics.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *appanalytics.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir un inventario
// @Description  Guarda el archivo (csv, xlsx, ods) en el directorio de datos, lo limpia
//
//	y actualiza el resumen de la portada.
//
// @Tags         inventory
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo de inventario"
// @Success      201   {object}  dto.UploadResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/uploads [post]
func (h *InventoryHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return invalidParams(c, "falta el archivo (campo 'file')")
	}

	f, err := fh.Open()
	if err != nil {
		return invalidParams(c, "no se pudo leer el archivo")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return invalidParams(c, "no se pudo leer el archivo")
	}

	res, err := h.uc.Upload(c.UserContext(), fh.Filename, data)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List godoc
// @Summary      Inventario limpio paginado
// @Tags         inventory
// @Produce      json
// @Param        dataset  query  string  false  "Archivo en el directorio de datos (vacío = por defecto)"
// @Param        limit    query  int     false  "Tamaño de página (default 100, max 1000)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var req dto.InventoryListRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c, "parámetros de consulta inválidos")
	}

	res, err := h.uc.Inventory(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// StockReport godoc
// @Summary      Análisis descriptivo de stock
// @Description  Stock bajo/excesivo, agotados, agregados por categoría y extremos de precio.
// @Tags         inventory
// @Produce      json
// @Param        dataset  query  string  false  "Archivo en el directorio de datos"
// @Success      200  {object}  dto.StockReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-report [get]
func (h *InventoryHandler) StockReport(c *fiber.Ctx) error {
	var q dto.DatasetQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, "parámetros de consulta inválidos")
	}

	res, err := h.uc.Describe(c.UserContext(), q.Dataset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
