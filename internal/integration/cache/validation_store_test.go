package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dbooster/trustd/internal/domain/entity"
)

func newTestStore(t *testing.T) (*redisValidationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisValidationStore(client, time.Hour).(*redisValidationStore), mr
}

func TestValidationStoreSaveAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	record := &entity.ClientValidationRecord{
		SessionID:         "abc123",
		FingerprintPrefix: "0123456789abcdef",
		Timestamp:         time.Now().UnixMilli(),
		Checksum:          "1z2y3x",
	}

	if err := store.Save(context.Background(), record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil for a saved record")
	}
	if *loaded != *record {
		t.Errorf("Load() = %+v, want %+v", loaded, record)
	}
}

func TestValidationStoreLoadMissingReturnsNil(t *testing.T) {
	store, _ := newTestStore(t)

	loaded, err := store.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != nil {
		t.Errorf("Load() = %+v, want nil for missing record", loaded)
	}
}

func TestValidationStoreSaveReplacesPreviousRecord(t *testing.T) {
	store, _ := newTestStore(t)
	first := &entity.ClientValidationRecord{SessionID: "abc123", Checksum: "old"}
	second := &entity.ClientValidationRecord{SessionID: "abc123", Checksum: "new"}

	if err := store.Save(context.Background(), first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(context.Background(), second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Checksum != "new" {
		t.Errorf("Checksum = %q, want replacement to win", loaded.Checksum)
	}
}

func TestValidationStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	record := &entity.ClientValidationRecord{SessionID: "abc123"}

	if err := store.Save(context.Background(), record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(context.Background(), "abc123"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	loaded, err := store.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != nil {
		t.Error("Load() found a record after Delete()")
	}

	if err := store.Delete(context.Background(), "abc123"); err != nil {
		t.Errorf("Delete() on missing record error = %v", err)
	}
}

func TestValidationStoreRecordsExpire(t *testing.T) {
	store, mr := newTestStore(t)
	record := &entity.ClientValidationRecord{SessionID: "abc123"}

	if err := store.Save(context.Background(), record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	mr.FastForward(2 * time.Hour)

	loaded, err := store.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != nil {
		t.Error("Load() found a record past its TTL")
	}
}
