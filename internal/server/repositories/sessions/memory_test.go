package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/boilerparts/internal/common"
)

func TestMemory_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()

	created, err := repo.Create(context.Background(), 7, time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated session id")
	}

	got, err := repo.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.UserID != 7 {
		t.Fatalf("unexpected user id: %d", got.UserID)
	}

	// returned session is a copy, mutating it must not affect the store
	got.UserID = 99
	again, err := repo.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if again.UserID != 7 {
		t.Fatalf("store mutated through returned copy")
	}
}

func TestMemory_GetMissing(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestMemory_Delete(t *testing.T) {
	repo := NewMemoryRepository()

	created, _ := repo.Create(context.Background(), 1, time.Hour)
	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	_, err := repo.Get(context.Background(), created.ID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("session still present after delete")
	}
}

func TestMemory_DeleteExpired(t *testing.T) {
	repo := NewMemoryRepository()

	expired, _ := repo.Create(context.Background(), 1, -time.Minute)
	alive, _ := repo.Create(context.Background(), 2, time.Hour)

	if err := repo.DeleteExpired(context.Background()); err != nil {
		t.Fatalf("DeleteExpired error: %v", err)
	}

	if _, err := repo.Get(context.Background(), expired.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expired session survived purge")
	}
	if _, err := repo.Get(context.Background(), alive.ID); err != nil {
		t.Fatalf("live session lost: %v", err)
	}
}
