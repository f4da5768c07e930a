package analytics

import (
	"sort"
	"strings"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
)

// ── Dominio → DTO ─────────────────────────────────────────────────────────────

func recordToDTO(r entity.InventoryRecord) dto.InventoryRecordDTO {
	return dto.InventoryRecordDTO{
		Codigo:     r.Codigo,
		Nombre:     r.Nombre,
		Categoria:  r.Categoria,
		Ubicacion:  r.Ubicacion,
		Cantidad:   r.Cantidad,
		Precio:     r.Precio,
		ValorTotal: r.ValorTotal,
		Extras:     r.Extras,
	}
}

func recordsToDTO(records []entity.InventoryRecord) []dto.InventoryRecordDTO {
	out := make([]dto.InventoryRecordDTO, len(records))
	for i, r := range records {
		out[i] = recordToDTO(r)
	}
	return out
}

func recordPtrToDTO(r *entity.InventoryRecord) *dto.InventoryRecordDTO {
	if r == nil {
		return nil
	}
	d := recordToDTO(*r)
	return &d
}

func cleanReportToDTO(rep inventory.CleanReport) dto.CleanReportDTO {
	return dto.CleanReportDTO{
		FilasEntrada:          rep.FilasEntrada,
		DescartadasCategoria:  rep.DescartadasCategoria,
		DescartadasCodigo:     rep.DescartadasCodigo,
		DescartadasValidacion: rep.DescartadasValidacion,
		DuplicadosEliminados:  rep.DuplicadosEliminados,
		FilasValidas:          rep.FilasValidas,
		ValorTotal:            rep.ValorTotal,
	}
}

func summaryToDTO(s inventory.Summary) dto.DashboardSummaryDTO {
	return dto.DashboardSummaryDTO{
		TotalProductos: s.TotalProductos,
		Categorias:     s.Categorias,
		StockPromedio:  s.StockPromedio,
		ValorTotal:     s.ValorTotalTexto,
	}
}

func abcToDTO(res inventory.ABCResult) *dto.ABCResultDTO {
	detalle := make([]dto.ABCItemDTO, len(res.Detalle))
	for i, it := range res.Detalle {
		detalle[i] = dto.ABCItemDTO{
			InventoryRecordDTO: recordToDTO(it.InventoryRecord),
			Participacion:      it.Participacion,
			ParticipacionAcum:  it.ParticipacionAcum,
			Clase:              it.Clase,
		}
	}
	return &dto.ABCResultDTO{
		Detalle:     detalle,
		CapitalAPct: res.CapitalAPct,
		TotalValor:  res.TotalValor,
	}
}

func alertsToDTO(res inventory.AlertsResult) *dto.AlertsResultDTO {
	alertas := make([]dto.AlertDTO, len(res.Alertas))
	for i, a := range res.Alertas {
		alertas[i] = dto.AlertDTO{
			InventoryRecordDTO: recordToDTO(a.InventoryRecord),
			Tipo:               a.Tipo,
			Severidad:          a.Severidad,
			ImpactoRelativo:    a.ImpactoRelativo,
			Detalle:            a.Detalle,
			PrioridadValor:     a.PrioridadValor,
			Recomendacion:      a.Recomendacion,
		}
	}
	out := &dto.AlertsResultDTO{
		Alertas:                alertas,
		SupuestoCapitalMuerto:  res.SupuestoCapitalMuerto,
		ColumnaRotacion:        res.ColumnaRotacion,
		TotalValor:             res.TotalValor,
		TotalAlertasDetectadas: res.TotalAlertasDetectadas,
	}
	if u := res.Umbrales; u != nil {
		out.Umbrales = &dto.UmbralesDTO{
			StockP25:    u.StockP25,
			StockP75:    u.StockP75,
			ValorP75:    u.ValorP75,
			RotacionP25: u.RotacionP25,
		}
	}
	return out
}

func whatIfToDTO(res inventory.WhatIfResult) *dto.WhatIfResultDTO {
	out := &dto.WhatIfResultDTO{
		Categoria:            res.Categoria,
		PorcentajeReduccion:  res.PorcentajeReduccion,
		CapitalLiberado:      res.CapitalLiberado,
		ValorActualCategoria: res.ValorActualCategoria,
		ValorEstimadoPost:    res.ValorEstimadoPost,
		Detalle:              recordsToDTO(res.Detalle),
		Mensaje:              res.Mensaje,
	}
	if res.TopN > 0 {
		n := res.TopN
		out.TopN = &n
	}
	return out
}

func categoryValuesToDTO(vals []inventory.CategoryValue) []dto.CategoryValueDTO {
	out := make([]dto.CategoryValueDTO, len(vals))
	for i, v := range vals {
		out[i] = dto.CategoryValueDTO{Categoria: v.Categoria, Valor: v.Valor}
	}
	return out
}

func stockReportToDTO(rep inventory.StockReport) *dto.StockReportDTO {
	return &dto.StockReportDTO{
		StockBajo:            recordsToDTO(rep.StockBajo),
		StockExcesivo:        recordsToDTO(rep.StockExcesivo),
		Agotados:             recordsToDTO(rep.Agotados),
		PromedioPorCategoria: categoryValuesToDTO(rep.PromedioPorCategoria),
		ValorPorCategoria:    categoryValuesToDTO(rep.ValorPorCategoria),
		MasCostosos:          recordsToDTO(rep.MasCostosos),
		MasEconomico:         recordPtrToDTO(rep.MasEconomico),
		MasCostoso:           recordPtrToDTO(rep.MasCostoso),
		MedianaStock:         rep.MedianaStock,
		P75Stock:             rep.P75Stock,
		UmbralStockBajo:      rep.UmbralStockBajo,
		UmbralStockExcesivo:  rep.UmbralStockExcesivo,
	}
}

// ── DTO → Dominio ─────────────────────────────────────────────────────────────

// tableFromMaps arma un conjunto crudo con los registros enviados por el cliente.
// Las claves se recortan y pasan a minúsculas, igual que las cabeceras de archivo.
func tableFromMaps(rows []map[string]any) entity.RawTable {
	table := entity.RawTable{Rows: make([]entity.RawRow, 0, len(rows))}
	seen := make(map[string]bool)
	for _, m := range rows {
		row := make(entity.RawRow, len(m))
		for k, v := range m {
			name := normalizeKey(k)
			if name == "" {
				continue
			}
			row[name] = v
			if !seen[name] {
				seen[name] = true
				table.Columns = append(table.Columns, name)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	sort.Strings(table.Columns)
	return table
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
