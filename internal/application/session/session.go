// Package session mantiene el estado cargado en memoria y lo persiste en cada cambio.
//
// Session es la única fuente de verdad mientras el proceso vive: se carga completo al
// abrir y cada comando es un ciclo leer-modificar-persistir. Fiber atiende peticiones en
// paralelo, así que todos los comandos pasan por un mutex (un único escritor).
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/jhoicas/Costbook-api/internal/application/codec"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/pkg/logger"
)

// Metrics observador opcional de comandos y fallos de persistencia.
type Metrics interface {
	ObserveCommand(command string, err error)
	ObservePersistenceFailure(collection, op string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveCommand(string, error)              {}
func (noopMetrics) ObservePersistenceFailure(string, string) {}

// Session estado en memoria más su almacenamiento.
type Session struct {
	mu       sync.Mutex
	book     *costbook.Book
	store    repository.DocumentStore
	log      *logger.Logger
	metrics  Metrics
	opts     []costbook.Option
	warnings []string
}

// Option configura la sesión.
type Option func(*Session)

// WithMetrics registra el observador de métricas.
func WithMetrics(m Metrics) Option {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithBookOptions pasa opciones (reloj, ids) al libro.
func WithBookOptions(opts ...costbook.Option) Option {
	return func(s *Session) { s.opts = append(s.opts, opts...) }
}

// Open carga todas las colecciones. Una colección ilegible o corrupta se descarta y
// arranca vacía; queda registrada como advertencia. Los movimientos inválidos y los
// nombres que coinciden tras normalizarse se omiten sin descartar la colección, también
// con advertencia. Open solo falla por un ctx cancelado.
func Open(ctx context.Context, store repository.DocumentStore, log *logger.Logger, opts ...Option) (*Session, error) {
	s := &Session{store: store, log: log, metrics: noopMetrics{}}
	for _, o := range opts {
		o(s)
	}

	var d costbook.Data
	assigned := 0
	ids := costbook.New(s.opts...)
	newID := func() string {
		assigned++
		return ids.NewID()
	}
	for _, c := range repository.AllCollections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := store.Load(ctx, c)
		var tolerated []string
		if err == nil {
			tolerated, err = codec.Decode(c, raw, &d, newID)
		}
		if err != nil {
			resetCollection(&d, c)
			s.discard(ctx, c, err)
			continue
		}
		for _, w := range tolerated {
			s.log.Warn().Str("collection", string(c)).Msg(w)
		}
		s.warnings = append(s.warnings, tolerated...)
	}
	s.book = costbook.FromData(d, s.opts...)

	// Los movimientos antiguos sin id reciben uno: se guardan para que el id sea estable.
	if assigned > 0 {
		s.log.Info().Int("records", assigned).Msg("ids asignados a movimientos antiguos")
		s.warnings = append(s.warnings, s.commit(ctx, repository.CollectionLedger)...)
	}
	s.log.Info().
		Int("materials", len(d.Materials)).
		Int("recipes", len(d.Recipes)).
		Int("records", len(d.Records)).
		Msg("estado cargado")
	return s, nil
}

func (s *Session) discard(ctx context.Context, c repository.Collection, cause error) {
	msg := fmt.Sprintf("no se pudo leer %s, se reinició vacío: %v", c, cause)
	s.log.Warn().Err(cause).Str("collection", string(c)).Msg("colección descartada")
	s.warnings = append(s.warnings, msg)
	if err := s.store.Discard(ctx, c); err != nil {
		s.log.Warn().Err(err).Str("collection", string(c)).Msg("no se pudo eliminar el documento corrupto")
		s.metrics.ObservePersistenceFailure(string(c), "discard")
	}
}

func resetCollection(d *costbook.Data, c repository.Collection) {
	switch c {
	case repository.CollectionMaterials:
		d.Materials = nil
	case repository.CollectionMaterialOrder:
		d.MaterialOrder = nil
	case repository.CollectionRecipes:
		d.Recipes = nil
	case repository.CollectionLedger:
		d.Records = nil
	case repository.CollectionCategories:
		d.Categories = nil
	}
}

// Read ejecuta fn con acceso exclusivo de lectura. fn no debe retener el libro.
func (s *Session) Read(fn func(b *costbook.Book)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.book)
}

// Mutate ejecuta un comando y persiste las colecciones indicadas. Si fn falla no se
// escribe nada (los métodos del libro no mutan cuando devuelven error). Los fallos de
// escritura no son errores: el estado en memoria queda bien y se devuelven advertencias.
func (s *Session) Mutate(ctx context.Context, command string, fn func(b *costbook.Book) error, dirty ...repository.Collection) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.book)
	s.metrics.ObserveCommand(command, err)
	if err != nil {
		s.log.Debug().Err(err).Str("command", command).Msg("comando rechazado")
		return nil, err
	}
	s.log.Debug().Str("command", command).Msg("comando aplicado")
	return s.commit(ctx, dirty...), nil
}

// Replace reemplaza todo el estado (restauración de respaldo) y persiste todo.
func (s *Session) Replace(ctx context.Context, d costbook.Data) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.book = costbook.FromData(d, s.opts...)
	s.metrics.ObserveCommand("replace", nil)
	return s.commit(ctx, repository.AllCollections...)
}

// Snapshot copia profunda del estado actual.
func (s *Session) Snapshot() costbook.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Data()
}

// NewID genera un id de movimiento con el generador del libro.
func (s *Session) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.NewID()
}

// Warnings advertencias de carga (colecciones descartadas).
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// Pending colecciones cuyo documento guardado no coincide con el estado en memoria,
// por ejemplo tras un fallo de escritura. Lee cada documento del almacenamiento; una
// colección que nunca se guardó equivale a la vacía.
func (s *Session) Pending(ctx context.Context) ([]repository.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending(ctx)
}

// Resync vuelve a escribir las colecciones pendientes. Devuelve las que quedaron
// escritas y las advertencias de las que volvieron a fallar.
func (s *Session) Resync(ctx context.Context) ([]repository.Collection, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.pending(ctx)
	if err != nil {
		return nil, nil, err
	}
	var written []repository.Collection
	var warnings []string
	for _, c := range pending {
		if w := s.commit(ctx, c); len(w) > 0 {
			warnings = append(warnings, w...)
			continue
		}
		written = append(written, c)
	}
	s.metrics.ObserveCommand("resync", nil)
	s.log.Info().Int("written", len(written)).Int("failed", len(warnings)).Msg("resincronización")
	return written, warnings, nil
}

// Revisions historial de una colección si el backend lo conserva.
func (s *Session) Revisions(ctx context.Context, c repository.Collection, limit int) ([]repository.Revision, error) {
	h, ok := s.store.(repository.RevisionLister)
	if !ok {
		return nil, fmt.Errorf("%w: el almacenamiento no guarda historial", domain.ErrNotFound)
	}
	return h.Revisions(ctx, c, limit)
}

func (s *Session) pending(ctx context.Context) ([]repository.Collection, error) {
	d := s.book.Data()
	empty := costbook.New().Data()
	var out []repository.Collection
	for _, c := range repository.AllCollections {
		want, err := codec.Encode(c, d)
		if err != nil {
			return nil, err
		}
		stored, err := s.store.Load(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("session: leer %s: %w", c, err)
		}
		if stored == nil {
			if stored, err = codec.Encode(c, empty); err != nil {
				return nil, err
			}
		}
		if !sameJSON(want, stored) {
			out = append(out, c)
		}
	}
	return out, nil
}

// sameJSON compara por valor: los backends SQL devuelven el JSON reformateado.
func sameJSON(a, b []byte) bool {
	va, errA := decodeJSON(a)
	vb, errB := decodeJSON(b)
	if errA != nil || errB != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	err := dec.Decode(&v)
	return v, err
}

// commit escribe colecciones completas. Se llama con el mutex tomado.
func (s *Session) commit(ctx context.Context, collections ...repository.Collection) []string {
	if len(collections) == 0 {
		return nil
	}
	d := s.book.Data()
	var warnings []string
	for _, c := range collections {
		raw, err := codec.Encode(c, d)
		if err == nil {
			err = s.store.Save(ctx, c, raw)
		}
		if err != nil {
			s.log.Warn().Err(err).Str("collection", string(c)).Msg("no se pudo guardar; el cambio queda solo en memoria")
			s.metrics.ObservePersistenceFailure(string(c), "save")
			warnings = append(warnings, fmt.Sprintf("no se pudo guardar %s: %v", c, err))
		}
	}
	return warnings
}
