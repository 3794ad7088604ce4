package driven

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.etcd.io/bbolt"

	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
)

// setupTestDB creates a temporary BoltDB instance for testing.
func setupTestDB(t *testing.T) (*bbolt.DB, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func testRecord(t *testing.T, id string) channel.Record {
	t.Helper()
	rec, err := channel.New(id, "Canale "+id, "descrizione", channel.CategoryNews, "https://example.com/"+id+".m3u8")
	if err != nil {
		t.Fatalf("failed to build record: %v", err)
	}
	return rec
}

func TestNewCatalogBoltDBRepository(t *testing.T) {
	t.Run("creates repository and bucket successfully", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewCatalogBoltDBRepository(db)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo == nil {
			t.Fatal("expected non-nil repository")
		}

		err = db.View(func(tx *bbolt.Tx) error {
			bucket := tx.Bucket([]byte(catalogBucket))
			if bucket == nil {
				t.Error("expected catalog bucket to exist")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("failed to verify bucket: %v", err)
		}
	})

	t.Run("returns error for nil database", func(t *testing.T) {
		repo, err := NewCatalogBoltDBRepository(nil)
		if err == nil {
			t.Fatal("expected error for nil database")
		}
		if repo != nil {
			t.Error("expected nil repository")
		}
	})
}

func TestCatalogBoltDBRepository_Load(t *testing.T) {
	t.Run("reports not found on empty database", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewCatalogBoltDBRepository(db)
		if err != nil {
			t.Fatalf("failed to create repository: %v", err)
		}

		records, found, err := repo.Load(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found {
			t.Error("expected found=false on empty database")
		}
		if records != nil {
			t.Errorf("expected nil records, got %v", records)
		}
	})

	t.Run("round-trips a saved catalog", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewCatalogBoltDBRepository(db)
		if err != nil {
			t.Fatalf("failed to create repository: %v", err)
		}

		rated, err := testRecord(t, "rai1").Rate(4)
		if err != nil {
			t.Fatalf("failed to rate record: %v", err)
		}
		in := []channel.Record{
			rated.IncrementViews().WithOrder(2).WithLogoURL("https://example.com/logo.png"),
			testRecord(t, "custom").AsUserAdded(),
		}

		if err := repo.Save(context.Background(), in); err != nil {
			t.Fatalf("failed to save catalog: %v", err)
		}

		out, found, err := repo.Load(context.Background())
		if err != nil {
			t.Fatalf("failed to load catalog: %v", err)
		}
		if !found {
			t.Fatal("expected found=true after save")
		}
		if len(out) != len(in) {
			t.Fatalf("expected %d records, got %d", len(in), len(out))
		}
		for i := range in {
			if out[i] != in[i] {
				a, b := in[i], out[i]
				if a.ID() != b.ID() || a.Name() != b.Name() || a.Rating() != b.Rating() ||
					b.ViewCount() != a.ViewCount() || a.EffectiveOrder() != b.EffectiveOrder() ||
					a.UserAdded() != b.UserAdded() || a.LogoURL() != b.LogoURL() {
					t.Errorf("record %d does not round-trip: %+v vs %+v", i, a.ID(), b.ID())
				}
			}
		}
		if out[0].Order() == nil || *out[0].Order() != 2 {
			t.Error("explicit order lost in round-trip")
		}
		if out[1].Order() != nil {
			t.Error("absent order must stay absent after round-trip")
		}
	})

	t.Run("reports a corrupt blob as absent with ErrCorruptCatalog", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewCatalogBoltDBRepository(db)
		if err != nil {
			t.Fatalf("failed to create repository: %v", err)
		}

		err = db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket([]byte(catalogBucket)).Put([]byte(catalogKey), []byte("{not json"))
		})
		if err != nil {
			t.Fatalf("failed to plant corrupt blob: %v", err)
		}

		records, found, err := repo.Load(context.Background())
		if !errors.Is(err, driven.ErrCorruptCatalog) {
			t.Fatalf("expected ErrCorruptCatalog, got %v", err)
		}
		if found {
			t.Error("expected found=false for corrupt blob")
		}
		if records != nil {
			t.Errorf("expected nil records, got %v", records)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewCatalogBoltDBRepository(db)
		if err != nil {
			t.Fatalf("failed to create repository: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, _, err := repo.Load(ctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestCatalogBoltDBRepository_Save(t *testing.T) {
	t.Run("replaces the previous catalog", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewCatalogBoltDBRepository(db)
		if err != nil {
			t.Fatalf("failed to create repository: %v", err)
		}

		ctx := context.Background()
		if err := repo.Save(ctx, []channel.Record{testRecord(t, "a"), testRecord(t, "b")}); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := repo.Save(ctx, []channel.Record{testRecord(t, "c")}); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		out, found, err := repo.Load(ctx)
		if err != nil || !found {
			t.Fatalf("load failed: found=%v err=%v", found, err)
		}
		if len(out) != 1 || out[0].ID() != "c" {
			t.Errorf("expected catalog [c], got %v", out)
		}
	})

	t.Run("saves an empty catalog as found", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo, err := NewCatalogBoltDBRepository(db)
		if err != nil {
			t.Fatalf("failed to create repository: %v", err)
		}

		ctx := context.Background()
		if err := repo.Save(ctx, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		out, found, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if !found {
			t.Error("an explicitly saved empty catalog must report found=true")
		}
		if len(out) != 0 {
			t.Errorf("expected empty catalog, got %v", out)
		}
	})
}

func TestCatalogBoltDBRepository_Ping(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewCatalogBoltDBRepository(db)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("expected healthy ping, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Ping(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
