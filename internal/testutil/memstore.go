// Package testutil ayudas compartidas por los tests: almacenamiento en memoria con
// fallos inyectables y un logger silencioso.
package testutil

import (
	"context"
	"sync"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/pkg/logger"
)

// MemStore DocumentStore en memoria.
type MemStore struct {
	mu        sync.Mutex
	docs      map[repository.Collection][]byte
	LoadErr   map[repository.Collection]error
	SaveErr   error
	Discarded []repository.Collection
	Saves     int
	Loads     int
}

// NewMemStore crea un almacenamiento vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		docs:    make(map[repository.Collection][]byte),
		LoadErr: make(map[repository.Collection]error),
	}
}

// Put carga un documento sin contar como escritura.
func (m *MemStore) Put(c repository.Collection, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[c] = []byte(data)
}

// Get devuelve el documento guardado (nil si no existe).
func (m *MemStore) Get(c repository.Collection) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[c]
}

func (m *MemStore) Load(_ context.Context, c repository.Collection) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if err := m.LoadErr[c]; err != nil {
		return nil, err
	}
	return m.docs[c], nil
}

func (m *MemStore) Save(_ context.Context, c repository.Collection, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.docs[c] = append([]byte(nil), data...)
	return nil
}

func (m *MemStore) Discard(_ context.Context, c repository.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, c)
	m.Discarded = append(m.Discarded, c)
	return nil
}

func (m *MemStore) Close() error { return nil }

// Logger logger silencioso para no ensuciar la salida de los tests.
func Logger() *logger.Logger {
	return logger.Nop()
}
