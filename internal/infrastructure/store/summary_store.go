package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
)

// SummaryFileName archivo con los KPIs del último inventario limpio.
const SummaryFileName = "latest_summary.json"

// SummaryStore persiste el resumen del dashboard como JSON en el directorio de reportes.
type SummaryStore struct {
	dir string
}

// NewSummaryStore construye el store sobre el directorio dado (se crea al guardar).
func NewSummaryStore(dir string) *SummaryStore {
	return &SummaryStore{dir: dir}
}

// Path ruta completa del archivo de resumen.
func (s *SummaryStore) Path() string {
	return filepath.Join(s.dir, SummaryFileName)
}

// Save reemplaza el resumen. Escribe a un temporal y renombra para que un lector
// concurrente nunca vea un archivo a medias.
func (s *SummaryStore) Save(_ context.Context, summary dto.DashboardSummaryDTO) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: crear %s: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("store: serializar resumen: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, SummaryFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: escribir resumen: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("store: reemplazar %s: %w", s.Path(), err)
	}
	return nil
}

// Latest devuelve el último resumen guardado o el resumen vacío si no existe.
func (s *SummaryStore) Latest(_ context.Context) (dto.DashboardSummaryDTO, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return dto.EmptyDashboardSummary(), nil
	}
	if err != nil {
		return dto.DashboardSummaryDTO{}, fmt.Errorf("store: leer resumen: %w", err)
	}

	var summary dto.DashboardSummaryDTO
	if err := json.Unmarshal(data, &summary); err != nil {
		return dto.DashboardSummaryDTO{}, fmt.Errorf("store: resumen corrupto en %s: %w", s.Path(), err)
	}
	return summary, nil
}
