package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-analitica/internal/domain"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
)

// SupportedExtensions extensiones que el cargador sabe leer, en orden de preferencia.
var SupportedExtensions = []string{".csv", ".xlsx", ".ods"}

// IsSupported indica si la extensión (con punto, cualquier capitalización) es soportada.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load lee un archivo de inventario y devuelve la tabla cruda.
// Si el archivo no existe y tryAlternatives es true, prueba el mismo nombre con
// las otras extensiones soportadas.
func Load(path string, tryAlternatives bool) (entity.RawTable, error) {
	resolved, err := Resolve(path, tryAlternatives)
	if err != nil {
		return entity.RawTable{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("loader: leer %s: %w", resolved, err)
	}
	return ParseBytes(resolved, data)
}

// Resolve valida la extensión y devuelve la ruta real que se cargaría.
func Resolve(path string, tryAlternatives bool) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupported(ext) {
		return "", fmt.Errorf("%w: extensión '%s', use %v", domain.ErrUnsupportedFormat, ext, SupportedExtensions)
	}
	if exists(path) {
		return path, nil
	}
	if tryAlternatives {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		for _, alt := range SupportedExtensions {
			if alt == ext {
				continue
			}
			if candidate := base + alt; exists(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no se encontró %s ni alternativas, archivos disponibles: %v",
		domain.ErrNotFound, path, availableFiles(filepath.Dir(path)))
}

// FindActualFilePath devuelve base + la primera extensión soportada que exista.
func FindActualFilePath(base string) (string, error) {
	for _, ext := range SupportedExtensions {
		if candidate := base + ext; exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: ningún archivo %v en %s", domain.ErrNotFound, SupportedExtensions, base)
}

// ParseBytes interpreta el contenido de un archivo según la extensión de name.
func ParseBytes(name string, data []byte) (entity.RawTable, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		rows, err = readCSV(data)
	case ".xlsx":
		rows, err = readXLSX(data)
	case ".ods":
		rows, err = readODS(data)
	default:
		return entity.RawTable{}, fmt.Errorf("%w: extensión '%s', use %v", domain.ErrUnsupportedFormat, ext, SupportedExtensions)
	}
	if err != nil {
		if errors.Is(err, domain.ErrEmptyOrCorrupt) {
			return entity.RawTable{}, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		return entity.RawTable{}, fmt.Errorf("%w: %s: %v", domain.ErrEmptyOrCorrupt, filepath.Base(name), err)
	}
	return buildTable(rows)
}

// buildTable toma la primera fila no vacía como cabecera.
// Nombres de columna recortados y en minúscula; celdas vacías → nil.
func buildTable(rows [][]string) (entity.RawTable, error) {
	start := -1
	for i, r := range rows {
		if !blankRow(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return entity.RawTable{}, fmt.Errorf("%w: sin cabecera", domain.ErrEmptyOrCorrupt)
	}

	columns := headerNames(rows[start])
	table := entity.RawTable{Columns: columns, Rows: make([]entity.RawRow, 0, len(rows)-start-1)}
	for _, r := range rows[start+1:] {
		if blankRow(r) {
			continue
		}
		row := make(entity.RawRow, len(columns))
		for j, col := range columns {
			if j >= len(r) {
				row[col] = nil
				continue
			}
			if v := strings.TrimSpace(r[j]); v != "" {
				row[col] = r[j]
			} else {
				row[col] = nil
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func headerNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			name = fmt.Sprintf("columna_%d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		out[i] = name
	}
	return out
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func availableFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && IsSupported(filepath.Ext(e.Name())) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}
