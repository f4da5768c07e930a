package dto

// ── Query parameters ──────────────────────────────────────────────────────────

// AlertsQuery parámetros para GET /api/analytics/alerts.
type AlertsQuery struct {
	Dataset string `query:"dataset"`
	TopN    int    `query:"top_n"` // default 10; <= 0 = todas
}

// WhatIfQuery parámetros para GET /api/analytics/what-if.
type WhatIfQuery struct {
	Dataset   string  `query:"dataset"`
	Categoria string  `query:"categoria"`
	Reduccion float64 `query:"reduccion"` // fracción (0.2) o porcentaje (20)
	TopN      int     `query:"top_n"`     // 0 = toda la categoría
}

// ── Request bodies ────────────────────────────────────────────────────────────

// RecordsRequest body con registros crudos suministrados por el cliente.
type RecordsRequest struct {
	Registros []map[string]any `json:"registros"`
}

// AlertsRequest body para POST /api/analytics/alerts.
type AlertsRequest struct {
	Registros []map[string]any `json:"registros"`
	TopN      *int             `json:"top_n,omitempty"`
}

// WhatIfRequest body para POST /api/analytics/what-if.
type WhatIfRequest struct {
	Registros []map[string]any `json:"registros"`
	Categoria string           `json:"categoria"`
	Reduccion float64          `json:"reduccion"`
	TopN      int              `json:"top_n,omitempty"`
}

// ── ABC ───────────────────────────────────────────────────────────────────────

// ABCItemDTO producto con su participación y clase.
type ABCItemDTO struct {
	InventoryRecordDTO
	Participacion     float64 `json:"participacion"`
	ParticipacionAcum float64 `json:"participacion_acum"`
	Clase             string  `json:"clase"` // A | B | C
}

// ABCResultDTO respuesta de /api/analytics/abc.
type ABCResultDTO struct {
	Detalle     []ABCItemDTO `json:"detalle"`
	CapitalAPct float64      `json:"capital_a_pct"`
	TotalValor  float64      `json:"total_valor"`
}

// ── Alertas ───────────────────────────────────────────────────────────────────

// AlertDTO alerta con la foto del registro que la disparó.
type AlertDTO struct {
	InventoryRecordDTO
	Tipo            string  `json:"tipo"`      // SOBRE_STOCK | RIESGO_QUIEBRE | CAPITAL_MUERTO
	Severidad       string  `json:"severidad"` // Alta | Media | Baja
	ImpactoRelativo float64 `json:"impacto_relativo"`
	Detalle         string  `json:"detalle"`
	PrioridadValor  float64 `json:"prioridad_valor"`
	Recomendacion   string  `json:"recomendacion"`
}

// UmbralesDTO percentiles usados por las reglas.
type UmbralesDTO struct {
	StockP25    float64 `json:"stock_p25"`
	StockP75    float64 `json:"stock_p75"`
	ValorP75    float64 `json:"valor_p75"`
	RotacionP25 float64 `json:"rotacion_p25"`
}

// AlertsResultDTO respuesta de /api/analytics/alerts.
type AlertsResultDTO struct {
	Alertas                []AlertDTO   `json:"alertas"`
	Umbrales               *UmbralesDTO `json:"umbrales"`
	SupuestoCapitalMuerto  string       `json:"supuesto_capital_muerto"`
	ColumnaRotacion        string       `json:"columna_rotacion,omitempty"`
	TotalValor             float64      `json:"total_valor"`
	TotalAlertasDetectadas int          `json:"total_alertas_detectadas"`
}

// ── What-if ───────────────────────────────────────────────────────────────────

// WhatIfResultDTO respuesta de /api/analytics/what-if.
type WhatIfResultDTO struct {
	Categoria            string               `json:"categoria"`
	PorcentajeReduccion  float64              `json:"porcentaje_reduccion"`
	TopN                 *int                 `json:"top_n"` // null = toda la categoría
	CapitalLiberado      float64              `json:"capital_liberado"`
	ValorActualCategoria float64              `json:"valor_actual_categoria"`
	ValorEstimadoPost    float64              `json:"valor_estimado_post"`
	Detalle              []InventoryRecordDTO `json:"detalle"`
	Mensaje              string               `json:"mensaje,omitempty"`
}
