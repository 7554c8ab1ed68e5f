package memory

import (
	"context"
	"testing"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence/persistencetest"
)

func TestSnapshotRepository(t *testing.T) {
	persistencetest.Run(t, func(_ *testing.T, pub persistence.Publisher) repositories.SnapshotRepository {
		return NewSnapshotRepository(pub)
	})
}

func TestSnapshotRepository_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(nil)
	if err := repo.Save(ctx, "ws", persistencetest.Sample(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, err := repo.Load(ctx, "ws")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first.Websites[0].Group = "mutated"

	second, err := repo.Load(ctx, "ws")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if second.Websites[0].Group != "G1" {
		t.Fatalf("expected stored snapshot to be unaffected, got group %q", second.Websites[0].Group)
	}
}
