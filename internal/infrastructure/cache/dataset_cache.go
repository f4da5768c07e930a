package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-analitica/internal/domain/entity"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
	"github.com/jhoicas/inventario-analitica/pkg/config"
)

const (
	datasetKeyPrefix     = "inventario:dataset"
	datasetScanBatchSize = 100
)

// Snapshot inventario limpio tal como se guarda en caché.
type Snapshot struct {
	Records []entity.InventoryRecord `json:"records"`
	Report  inventory.CleanReport    `json:"report"`
}

// DatasetCache caché de inventarios limpios indexada por la huella del archivo.
type DatasetCache interface {
	Get(ctx context.Context, fingerprint string) ([]entity.InventoryRecord, inventory.CleanReport, bool, error)
	Set(ctx context.Context, fingerprint string, records []entity.InventoryRecord, report inventory.CleanReport) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisDatasetCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDatasetCache struct{}

// NewDatasetCache conecta a Redis si la caché está habilitada; si no, devuelve una caché nula.
func NewDatasetCache(cfg config.CacheConfig) (DatasetCache, error) {
	if !cfg.Enabled {
		return &noopDatasetCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return &redisDatasetCache{client: client, ttl: ttl}, nil
}

func NewNoopDatasetCache() DatasetCache {
	return &noopDatasetCache{}
}

func (c *redisDatasetCache) Get(ctx context.Context, fingerprint string) ([]entity.InventoryRecord, inventory.CleanReport, bool, error) {
	payload, err := c.client.Get(ctx, SnapshotKey(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, inventory.CleanReport{}, false, nil
	}
	if err != nil {
		return nil, inventory.CleanReport{}, false, fmt.Errorf("cache: get en redis falló: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, inventory.CleanReport{}, false, fmt.Errorf("cache: snapshot ilegible: %w", err)
	}
	return snap.Records, snap.Report, true, nil
}

func (c *redisDatasetCache) Set(ctx context.Context, fingerprint string, records []entity.InventoryRecord, report inventory.CleanReport) error {
	payload, err := json.Marshal(Snapshot{Records: records, Report: report})
	if err != nil {
		return fmt.Errorf("cache: serializar snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey(fingerprint), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set en redis falló: %w", err)
	}
	return nil
}

func (c *redisDatasetCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, datasetKeyPrefix, datasetScanBatchSize)
}

func (c *redisDatasetCache) Close() error { return c.client.Close() }

func (n *noopDatasetCache) Get(context.Context, string) ([]entity.InventoryRecord, inventory.CleanReport, bool, error) {
	return nil, inventory.CleanReport{}, false, nil
}

func (n *noopDatasetCache) Set(context.Context, string, []entity.InventoryRecord, inventory.CleanReport) error {
	return nil
}

func (n *noopDatasetCache) InvalidateAll(context.Context) error { return nil }

func (n *noopDatasetCache) Close() error { return nil }

// SnapshotKey clave Redis de una huella de archivo.
func SnapshotKey(fingerprint string) string {
	sum := sha1.Sum([]byte(fingerprint))
	return fmt.Sprintf("%s:%s", datasetKeyPrefix, hex.EncodeToString(sum[:]))
}
