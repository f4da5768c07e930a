package dto

// ── Query parameters ──────────────────────────────────────────────────────────

// DatasetQuery selecciona el inventario a analizar (nombre en el directorio de datos,
// con o sin extensión). Vacío = inventario por defecto.
type DatasetQuery struct {
	Dataset string `query:"dataset"`
}

// InventoryListRequest parámetros para GET /api/inventory.
type InventoryListRequest struct {
	Dataset string `query:"dataset"`
	Limit   int    `query:"limit"`
	Offset  int    `query:"offset"`
}

// Page devuelve la paginación pedida con los valores por defecto aplicados.
func (r InventoryListRequest) Page() PageRequest {
	p := PageRequest{Limit: r.Limit, Offset: r.Offset}
	p.DefaultPage()
	return p
}

// ── Registros ─────────────────────────────────────────────────────────────────

// InventoryRecordDTO registro de inventario limpio.
type InventoryRecordDTO struct {
	Codigo     string         `json:"codigo"`
	Nombre     string         `json:"nombre"`
	Categoria  string         `json:"categoria"`
	Ubicacion  string         `json:"ubicacion"`
	Cantidad   float64        `json:"cantidad"`
	Precio     float64        `json:"precio"`
	ValorTotal float64        `json:"valor_total"`
	Extras     map[string]any `json:"extras,omitempty"` // columnas no canónicas (rotacion, ventas_mensuales…)
}

// CleanReportDTO filas descartadas en cada etapa de la limpieza.
type CleanReportDTO struct {
	FilasEntrada          int     `json:"filas_entrada"`
	DescartadasCategoria  int     `json:"descartadas_categoria"`
	DescartadasCodigo     int     `json:"descartadas_codigo"`
	DescartadasValidacion int     `json:"descartadas_validacion"`
	DuplicadosEliminados  int     `json:"duplicados_eliminados"`
	FilasValidas          int     `json:"filas_validas"`
	ValorTotal            float64 `json:"valor_total"`
}

// InventoryListDTO respuesta de GET /api/inventory.
type InventoryListDTO struct {
	Dataset   string               `json:"dataset"`
	Registros []InventoryRecordDTO `json:"registros"`
	Reporte   CleanReportDTO       `json:"reporte"`
	Page      PageResponse         `json:"page"`
}

// CleanResultDTO resultado completo de una limpieza (comando limpiar).
type CleanResultDTO struct {
	Dataset   string               `json:"dataset"`
	Reporte   CleanReportDTO       `json:"reporte"`
	Resumen   DashboardSummaryDTO  `json:"resumen"`
	Registros []InventoryRecordDTO `json:"registros"`
}

// UploadResultDTO respuesta de POST /api/uploads.
type UploadResultDTO struct {
	RunID   string              `json:"run_id"`
	Archivo string              `json:"archivo"`
	Reporte CleanReportDTO      `json:"reporte"`
	Resumen DashboardSummaryDTO `json:"resumen"`
}

// ── Análisis descriptivo ──────────────────────────────────────────────────────

// CategoryValueDTO agregado por categoría.
type CategoryValueDTO struct {
	Categoria string  `json:"categoria"`
	Valor     float64 `json:"valor"`
}

// StockReportDTO respuesta de GET /api/inventory/stock-report.
type StockReportDTO struct {
	StockBajo            []InventoryRecordDTO `json:"stock_bajo"`
	StockExcesivo        []InventoryRecordDTO `json:"stock_excesivo"`
	Agotados             []InventoryRecordDTO `json:"agotados"`
	PromedioPorCategoria []CategoryValueDTO   `json:"promedio_por_categoria"`
	ValorPorCategoria    []CategoryValueDTO   `json:"valor_por_categoria"`
	MasCostosos          []InventoryRecordDTO `json:"mas_costosos"`
	MasEconomico         *InventoryRecordDTO  `json:"mas_economico"`
	MasCostoso           *InventoryRecordDTO  `json:"mas_costoso"`
	MedianaStock         float64              `json:"mediana_stock"`
	P75Stock             float64              `json:"p75_stock"`
	UmbralStockBajo      float64              `json:"umbral_stock_bajo"`
	UmbralStockExcesivo  float64              `json:"umbral_stock_excesivo"`
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardSummaryDTO resumen persistido tras cada limpieza (latest_summary.json).
// Las claves son las que consume la portada del dashboard.
type DashboardSummaryDTO struct {
	TotalProductos int     `json:"Total Productos"`
	Categorias     int     `json:"Categorías"`
	StockPromedio  float64 `json:"Stock Promedio"`
	ValorTotal     string  `json:"Valor Total"` // ej. "$12,345.67"
}

// EmptyDashboardSummary valor devuelto cuando aún no se ha limpiado ningún inventario.
func EmptyDashboardSummary() DashboardSummaryDTO {
	return DashboardSummaryDTO{ValorTotal: "$0"}
}
