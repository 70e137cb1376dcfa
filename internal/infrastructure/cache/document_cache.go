// Package cache decora un DocumentStore con una caché en memoria de lectura.
// Se usa delante de los backends SQL para no releer documentos que este mismo
// proceso acaba de escribir.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

var (
	_ repository.DocumentStore  = (*DocumentCache)(nil)
	_ repository.RevisionLister = (*DocumentCache)(nil)
)

// DocumentCache caché write-through sobre otro DocumentStore.
type DocumentCache struct {
	inner repository.DocumentStore
	c     *gocache.Cache
}

// New envuelve inner. ttl <= 0 mantiene las entradas hasta que se reemplazan.
func New(inner repository.DocumentStore, ttl time.Duration) *DocumentCache {
	exp, cleanup := ttl, 2*ttl
	if ttl <= 0 {
		exp, cleanup = gocache.NoExpiration, 0
	}
	return &DocumentCache{inner: inner, c: gocache.New(exp, cleanup)}
}

func (d *DocumentCache) Load(ctx context.Context, c repository.Collection) ([]byte, error) {
	if v, ok := d.c.Get(string(c)); ok {
		return clone(v.([]byte)), nil
	}
	data, err := d.inner.Load(ctx, c)
	if err != nil {
		return nil, err
	}
	if data != nil {
		d.c.Set(string(c), clone(data), gocache.DefaultExpiration)
	}
	return data, nil
}

func (d *DocumentCache) Save(ctx context.Context, c repository.Collection, data []byte) error {
	if err := d.inner.Save(ctx, c, data); err != nil {
		d.c.Delete(string(c))
		return err
	}
	d.c.Set(string(c), clone(data), gocache.DefaultExpiration)
	return nil
}

func (d *DocumentCache) Discard(ctx context.Context, c repository.Collection) error {
	d.c.Delete(string(c))
	return d.inner.Discard(ctx, c)
}

// Revisions delega en el backend; el historial no pasa por la caché.
func (d *DocumentCache) Revisions(ctx context.Context, c repository.Collection, limit int) ([]repository.Revision, error) {
	h, ok := d.inner.(repository.RevisionLister)
	if !ok {
		return nil, fmt.Errorf("%w: el almacenamiento no guarda historial", domain.ErrNotFound)
	}
	return h.Revisions(ctx, c, limit)
}

func (d *DocumentCache) Close() error {
	d.c.Flush()
	return d.inner.Close()
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
