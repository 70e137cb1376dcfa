// Package jsonfile guarda cada colección como un archivo JSON dentro de un directorio,
// con los mismos nombres de archivo que la versión original para que los datos
// existentes se sigan cargando.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// FileNames archivo de cada colección.
var FileNames = map[repository.Collection]string{
	repository.CollectionMaterials:     "saved_materials.json",
	repository.CollectionMaterialOrder: "material_order.json",
	repository.CollectionRecipes:       "saved_recipes.json",
	repository.CollectionLedger:        "accounting_records.json",
	repository.CollectionCategories:    "categories.json",
}

// Store DocumentStore sobre archivos.
type Store struct {
	dir string
}

// New crea el directorio si no existe.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: crear directorio %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path ruta del archivo de una colección.
func (s *Store) Path(c repository.Collection) (string, error) {
	name, ok := FileNames[c]
	if !ok {
		return "", fmt.Errorf("jsonfile: colección desconocida %q", c)
	}
	return filepath.Join(s.dir, name), nil
}

func (s *Store) Load(_ context.Context, c repository.Collection) ([]byte, error) {
	path, err := s.Path(c)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: leer %s: %w", path, err)
	}
	return data, nil
}

// Save escribe en un temporal del mismo directorio y lo renombra: un fallo a mitad de
// escritura nunca deja el archivo truncado.
func (s *Store) Save(_ context.Context, c repository.Collection, data []byte) error {
	path, err := s.Path(c)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: escribir %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: cerrar %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("jsonfile: renombrar %s: %w", path, err)
	}
	return nil
}

func (s *Store) Discard(_ context.Context, c repository.Collection) error {
	path, err := s.Path(c)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("jsonfile: eliminar %s: %w", path, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
