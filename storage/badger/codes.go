package badger

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/medcode/core"
	"github.com/poiesic/medcode/storage"
)

// CodeRepository implements storage.CodeRepository using BadgerDB.
type CodeRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CodeRepository = (*CodeRepository)(nil)

// NewCodeRepository creates a new code repository backed by the given backend.
func NewCodeRepository(backend *Backend) (*CodeRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &CodeRepository{
		backend: backend,
		logger:  slog.Default().With("component", "code-repository"),
	}, nil
}

// AddCodes adds one or more codes to the catalog.
func (r *CodeRepository) AddCodes(ctx context.Context, codes ...*core.Code) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, code := range codes {
			if err := core.ValidateCode(code); err != nil {
				return err
			}
			if code.InsertedAt.IsZero() {
				code.InsertedAt = now
			}
			code.UpdatedAt = now

			if err := tx.Set(makeCodeKey(code.Id), storage.MarshalCode(code)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCode retrieves a single code by its canonical identifier.
func (r *CodeRepository) GetCode(ctx context.Context, id string) (*core.Code, error) {
	var code *core.Code
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCodeKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			code, err = storage.UnmarshalCode(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return code, nil
}

// GetCodes retrieves multiple codes by their identifiers.
// Missing identifiers are skipped without error.
func (r *CodeRepository) GetCodes(ctx context.Context, ids ...string) ([]*core.Code, error) {
	codes := make([]*core.Code, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeCodeKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				code, err := storage.UnmarshalCode(val)
				if err != nil {
					return err
				}
				codes = append(codes, code)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// CodeCount returns the number of codes in the catalog.
func (r *CodeRepository) CodeCount(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = codeKeyPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ForEachCode iterates over every code in the catalog.
func (r *CodeRepository) ForEachCode(ctx context.Context, fn func(code *core.Code) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = codeKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var code *core.Code
			err := iter.Item().Value(func(val []byte) error {
				var err error
				code, err = storage.UnmarshalCode(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(code); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// DatasetInfo retrieves metadata about the ingested dataset.
func (r *CodeRepository) DatasetInfo(ctx context.Context) (*core.DatasetInfo, error) {
	var info *core.DatasetInfo
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDatasetInfoKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			info, err = storage.UnmarshalDatasetInfo(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// SetDatasetInfo stores metadata about the ingested dataset.
func (r *CodeRepository) SetDatasetInfo(ctx context.Context, info *core.DatasetInfo) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeDatasetInfoKey(), storage.MarshalDatasetInfo(info)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Clear removes all codes and dataset metadata.
func (r *CodeRepository) Clear(ctx context.Context) error {
	if err := r.backend.DropPrefix(codeKeyPrefix()); err != nil {
		return err
	}
	return r.backend.DropPrefix(makeDatasetInfoKey())
}

// Close closes the repository. The underlying backend is shared and must be
// closed separately.
func (r *CodeRepository) Close() error {
	return nil
}
