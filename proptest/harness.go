package proptest

import (
	"cardvault/internal/card"
	"cardvault/internal/collection"
	"cardvault/internal/kv"
	"context"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

const (
	minRecords        = 0
	maxRecords        = 20
	typicalMinRecords = 1
	typicalMaxRecords = 10
	maxSearchResults  = 30
	sqliteFileName    = "cardvault.db"
)

type Harness struct {
	T   *rapid.T
	Dir string
	Ctx context.Context
}

func (h *Harness) GenRecord(opts ...RecordGenOpt) card.Record {
	return GenRecord(h.T, opts...)
}

// OpenBackend opens a fresh backend of kind b inside the iteration dir.
func (h *Harness) OpenBackend(b kv.Backend) kv.Store {
	var (
		backend kv.Store
		err     error
	)
	switch b {
	case kv.BackendSQLite:
		backend, err = kv.OpenSQLite(filepath.Join(h.Dir, sqliteFileName))
	case kv.BackendFile:
		backend, err = kv.NewFileStore(h.Dir)
	default:
		backend = kv.NewMemStore()
	}
	if err != nil {
		h.T.Fatalf("failed to open %s backend: %v", b, err)
	}
	return backend
}

type StoreHarness struct {
	Harness
	Backend     kv.Store
	BackendKind kv.Backend
	Store       *collection.Store
}

func (h *StoreHarness) MustAdd(opts ...RecordGenOpt) card.Record {
	r := h.GenRecord(opts...)
	if _, err := h.Store.Add(h.Ctx, r); err != nil {
		h.T.Fatalf("failed to add record: %v", err)
	}
	return r
}

func (h *StoreHarness) AddRecords(minCount, maxCount int) []card.Record {
	var added []card.Record
	n := rapid.IntRange(minCount, maxCount).Draw(h.T, "numRecords")
	for range n {
		added = append(added, h.MustAdd())
	}
	return added
}

func (h *StoreHarness) MustLoad() collection.Collection {
	c, err := h.Store.Load(h.Ctx)
	if err != nil {
		h.T.Fatalf("failed to load collection: %v", err)
	}
	return c
}

func newIterDir(rt *rapid.T, root string) string {
	dir, err := os.MkdirTemp(root, "iter")
	if err != nil {
		rt.Fatalf("failed to create iter dir: %v", err)
	}
	return dir
}

// RunWithStore runs fn once per rapid iteration against a fresh
// collection store on a drawn backend.
func RunWithStore(t *testing.T, fn func(h *StoreHarness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		kind := rapid.SampledFrom([]kv.Backend{kv.BackendMemory, kv.BackendFile, kv.BackendSQLite}).Draw(rt, "backend")
		runStore(rt, tempDir, kind, fn)
	})
}

// RunWithMemoryStore is RunWithStore pinned to the in-memory backend for
// properties that do not depend on persistence.
func RunWithMemoryStore(t *testing.T, fn func(h *StoreHarness)) {
	rapid.Check(t, func(rt *rapid.T) {
		runStore(rt, "", kv.BackendMemory, fn)
	})
}

func runStore(rt *rapid.T, root string, kind kv.Backend, fn func(h *StoreHarness)) {
	h := &StoreHarness{
		Harness:     Harness{T: rt, Ctx: context.Background()},
		BackendKind: kind,
	}
	if kind != kv.BackendMemory {
		h.Dir = newIterDir(rt, root)
	}
	h.Backend = h.OpenBackend(kind)
	defer func() { _ = h.Backend.Close() }()
	h.Store = collection.NewStore(h.Backend)

	fn(h)
}

func RunBasic(t *testing.T, fn func(h *Harness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		fn(&Harness{
			T:   rt,
			Dir: newIterDir(rt, tempDir),
			Ctx: context.Background(),
		})
	})
}
