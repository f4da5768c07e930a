package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/inventario-analitica/internal/domain"
	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/loader"
)

// DatasetStore ubica, guarda y lee inventarios dentro del directorio de datos.
type DatasetStore struct {
	dir         string
	defaultName string
}

// NewDatasetStore construye el store. defaultName es el inventario usado cuando no se indica otro.
func NewDatasetStore(dir, defaultName string) *DatasetStore {
	return &DatasetStore{dir: dir, defaultName: defaultName}
}

// Resolve traduce un nombre de dataset (con o sin extensión) a una ruta existente.
// Sin extensión se prueba cada extensión soportada; con extensión se aceptan alternativas.
func (s *DatasetStore) Resolve(_ context.Context, dataset string) (string, error) {
	name := strings.TrimSpace(dataset)
	if name == "" {
		name = s.defaultName
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: dataset '%s' debe ser un nombre de archivo", domain.ErrInvalidInput, dataset)
	}

	path := filepath.Join(s.dir, name)
	if ext := filepath.Ext(name); ext != "" && loader.IsSupported(ext) {
		return loader.Resolve(path, true)
	}
	return loader.FindActualFilePath(path)
}

// Save guarda un archivo subido con su nombre base y devuelve la ruta final.
func (s *DatasetStore) Save(_ context.Context, filename string, data []byte) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("%w: nombre de archivo vacío", domain.ErrInvalidInput)
	}
	if !loader.IsSupported(filepath.Ext(name)) {
		return "", fmt.Errorf("%w: extensión '%s', use %v", domain.ErrUnsupportedFormat, filepath.Ext(name), loader.SupportedExtensions)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("store: crear %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("store: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("store: escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("store: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("store: guardar %s: %w", path, err)
	}
	return path, nil
}

// Load lee la tabla cruda de una ruta ya resuelta.
func (s *DatasetStore) Load(_ context.Context, path string) (entity.RawTable, error) {
	return loader.Load(path, false)
}

// Fingerprint identifica la versión de un archivo (ruta, fecha de modificación y tamaño).
func (s *DatasetStore) Fingerprint(_ context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("store: stat %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return fmt.Sprintf("%s|%d|%d", abs, info.ModTime().UnixNano(), info.Size()), nil
}
