package storage

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/sync/errgroup"

	"github.com/wbrown/janus-columnar/field"
)

// BadgerStore implements Store using BadgerDB
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB-backed store at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs for now

	// Performance optimizations for read-heavy workload
	opts.MemTableSize = 128 << 20   // 128MB memtables (default 64MB)
	opts.BlockCacheSize = 256 << 20 // 256MB block cache for faster reads
	opts.IndexCacheSize = 100 << 20 // 100MB index cache
	opts.DetectConflicts = false    // Disable conflict detection for better performance
	opts.NumCompactors = 4          // Parallel compaction
	opts.ValueThreshold = 1 << 10   // 1KB - store small values in LSM tree

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// Put stores f under name in its binary form.
func (s *BadgerStore) Put(name string, f *field.Field) error {
	var buf bytes.Buffer
	if err := field.WriteFieldBinary(f, &buf); err != nil {
		return fmt.Errorf("failed to encode field %q: %w", name, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), buf.Bytes())
	})
}

// Get retrieves the field stored under name.
func (s *BadgerStore) Get(name string) (field.Field, error) {
	var result field.Field

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			f, err := field.ReadFieldBinary(bytes.NewReader(val))
			if err != nil {
				return fmt.Errorf("failed to decode field %q: %w", name, err)
			}
			result = f
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return field.Field{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return result, err
}

// Delete removes the field stored under name.
func (s *BadgerStore) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(name)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
}

// Scan returns an iterator over fields whose names start with prefix.
func (s *BadgerStore) Scan(prefix string) (Iterator, error) {
	txn := s.db.NewTransaction(false)

	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 1000 // Increased from 10 for better bulk scan performance
	opts.PrefetchValues = true
	opts.Prefix = []byte(prefix)

	it := txn.NewIterator(opts)

	return &badgerIterator{
		txn:    txn,
		it:     it,
		prefix: []byte(prefix),
	}, nil
}

// Close closes the store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

type badgerIterator struct {
	txn    *badger.Txn
	it     *badger.Iterator
	prefix []byte
	first  bool
}

func (i *badgerIterator) Next() bool {
	if !i.first {
		i.first = true
		i.it.Rewind()
	} else {
		i.it.Next()
	}
	return i.it.ValidForPrefix(i.prefix)
}

func (i *badgerIterator) Name() string {
	return string(i.it.Item().Key())
}

func (i *badgerIterator) Field() (field.Field, error) {
	var result field.Field
	err := i.it.Item().Value(func(val []byte) error {
		f, err := field.ReadFieldBinary(bytes.NewReader(val))
		if err != nil {
			return err
		}
		result = f
		return nil
	})
	return result, err
}

func (i *badgerIterator) Close() error {
	i.it.Close()
	i.txn.Discard()
	return nil
}

type encodedField struct {
	name  string
	value []byte
}

// BulkLoad encodes and writes many fields concurrently. Encoding fans
// out across a worker pool; writes go through a single badger
// WriteBatch, which batches internally.
func (s *BadgerStore) BulkLoad(ctx context.Context, fields map[string]field.Field) error {
	names := make(chan string)
	encoded := make(chan encodedField)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(names)
		for name := range fields {
			select {
			case names <- name:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	workers, wctx := errgroup.WithContext(ctx)
	for w := 0; w < runtime.NumCPU(); w++ {
		workers.Go(func() error {
			for name := range names {
				f := fields[name]
				var buf bytes.Buffer
				if err := field.WriteFieldBinary(&f, &buf); err != nil {
					return fmt.Errorf("failed to encode field %q: %w", name, err)
				}
				select {
				case encoded <- encodedField{name: name, value: buf.Bytes()}:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(encoded)
		return workers.Wait()
	})

	g.Go(func() error {
		wb := s.db.NewWriteBatch()
		defer wb.Cancel()
		for ef := range encoded {
			if err := wb.Set([]byte(ef.name), ef.value); err != nil {
				return fmt.Errorf("failed to batch field %q: %w", ef.name, err)
			}
		}
		return wb.Flush()
	})

	return g.Wait()
}
