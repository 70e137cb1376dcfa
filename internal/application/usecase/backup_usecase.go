package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/jhoicas/Costbook-api/internal/application/codec"
	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

// BackupVersion versión del formato de respaldo combinado.
const BackupVersion = 1

// Claves probadas por colección al importar: la canónica primero y luego las de los
// archivos antiguos (un respaldo armado juntando los .json sueltos).
var backupKeys = map[repository.Collection][]string{
	repository.CollectionMaterials:     {"$.materials", "$.saved_materials"},
	repository.CollectionMaterialOrder: {"$.material_order"},
	repository.CollectionRecipes:       {"$.recipes", "$.saved_recipes"},
	repository.CollectionLedger:        {"$.ledger", "$.accounting_records"},
	repository.CollectionCategories:    {"$.categories"},
}

// backupDoc documento de respaldo; el orden de los campos es el del archivo.
type backupDoc struct {
	Version       int             `json:"version"`
	ExportedAt    string          `json:"exported_at"`
	Materials     json.RawMessage `json:"materials"`
	MaterialOrder json.RawMessage `json:"material_order"`
	Recipes       json.RawMessage `json:"recipes"`
	Ledger        json.RawMessage `json:"ledger"`
	Categories    json.RawMessage `json:"categories"`
}

// BackupUseCase exporta e importa todo el estado en un solo documento JSON.
type BackupUseCase struct {
	s   *session.Session
	now func() time.Time
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(s *session.Session) *BackupUseCase {
	return &BackupUseCase{s: s, now: time.Now}
}

// Export documento con todas las colecciones.
func (uc *BackupUseCase) Export(_ context.Context) ([]byte, error) {
	d := uc.s.Snapshot()
	doc := backupDoc{Version: BackupVersion, ExportedAt: uc.now().UTC().Format(time.RFC3339)}
	for c, dst := range map[repository.Collection]*json.RawMessage{
		repository.CollectionMaterials:     &doc.Materials,
		repository.CollectionMaterialOrder: &doc.MaterialOrder,
		repository.CollectionRecipes:       &doc.Recipes,
		repository.CollectionLedger:        &doc.Ledger,
		repository.CollectionCategories:    &doc.Categories,
	} {
		raw, err := codec.Encode(c, d)
		if err != nil {
			return nil, fmt.Errorf("backup: %s: %w", c, err)
		}
		*dst = json.RawMessage(bytes.TrimSpace(raw))
	}
	return codec.Marshal(doc)
}

// Import reemplaza todo el estado con el respaldo. Si alguna colección no se puede
// leer el respaldo se rechaza completo y el estado no cambia.
func (uc *BackupUseCase) Import(ctx context.Context, raw []byte) (*dto.ImportBackupResponse, error) {
	d, err := uc.decode(raw)
	if err != nil {
		return nil, err
	}
	warnings := uc.s.Replace(ctx, d)
	return &dto.ImportBackupResponse{
		Materials:  len(d.Materials),
		Recipes:    len(d.Recipes),
		Records:    len(d.Records),
		Categories: len(d.Categories),
		Warnings:   warnings,
	}, nil
}

// Warnings advertencias de la carga inicial (colecciones descartadas).
func (uc *BackupUseCase) Warnings() []string {
	return uc.s.Warnings()
}

// SyncStatus colecciones pendientes de escribir en el almacenamiento.
func (uc *BackupUseCase) SyncStatus(ctx context.Context) (*dto.SyncStatusResponse, error) {
	pending, err := uc.s.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return &dto.SyncStatusResponse{Pending: collectionNames(pending)}, nil
}

// Resync vuelve a escribir las colecciones pendientes.
func (uc *BackupUseCase) Resync(ctx context.Context) (*dto.ResyncResponse, error) {
	written, warnings, err := uc.s.Resync(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return &dto.ResyncResponse{Written: collectionNames(written), Warnings: warnings}, nil
}

// Revisions historial guardado de una colección (solo PostgreSQL lo conserva).
func (uc *BackupUseCase) Revisions(ctx context.Context, collection string, limit int) (*dto.RevisionListResponse, error) {
	c := repository.Collection(collection)
	known := false
	for _, k := range repository.AllCollections {
		known = known || k == c
	}
	if !known {
		return nil, fmt.Errorf("%w: colección desconocida %q", domain.ErrInvalidInput, collection)
	}
	revs, err := uc.s.Revisions(ctx, c, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	out := &dto.RevisionListResponse{Collection: collection, Items: make([]dto.RevisionResponse, 0, len(revs))}
	for _, r := range revs {
		item := dto.RevisionResponse{ID: r.ID, SavedAt: r.SavedAt, Size: r.Size}
		if r.Total.Valid {
			total := r.Total.Decimal
			item.Total = &total
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func collectionNames(cs []repository.Collection) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, string(c))
	}
	return out
}

func (uc *BackupUseCase) decode(raw []byte) (costbook.Data, error) {
	var d costbook.Data

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return d, fmt.Errorf("%w: respaldo no es JSON válido: %v", domain.ErrInvalidInput, err)
	}
	obj, ok := root.(map[string]interface{})
	if !ok {
		return d, fmt.Errorf("%w: el respaldo debe ser un objeto JSON", domain.ErrInvalidInput)
	}
	if v, ok := obj["version"].(json.Number); ok {
		if n, err := v.Int64(); err != nil || n > BackupVersion {
			return d, fmt.Errorf("%w: versión de respaldo no soportada %s", domain.ErrInvalidInput, v)
		}
	}

	for _, c := range repository.AllCollections {
		value, found := probe(root, backupKeys[c])
		if !found {
			continue
		}
		part, err := json.Marshal(value)
		if err != nil {
			return d, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, c, err)
		}
		tolerated, err := codec.Decode(c, part, &d, uc.s.NewID)
		if err != nil {
			return d, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, c, err)
		}
		// Un respaldo se acepta completo o no se acepta.
		if len(tolerated) > 0 {
			return d, fmt.Errorf("%w: %s", domain.ErrInvalidInput, tolerated[0])
		}
	}
	return d, nil
}

// probe devuelve el primer valor no nulo encontrado entre las rutas.
func probe(root interface{}, paths []string) (interface{}, bool) {
	for _, p := range paths {
		v, err := jsonpath.Get(p, root)
		if err == nil && v != nil {
			return v, true
		}
	}
	return nil, false
}
