package repository

import (
	"errors"
	"fmt"
	"strings"

	"pdf-workbench/internal/domain"

	"github.com/dgraph-io/badger/v4"
)

// ThumbnailCache keeps rendered page thumbnails in an in-memory BadgerDB,
// keyed thumb/<session>/<original index>.
type ThumbnailCache struct {
	db     *badger.DB
	logger domain.Logger
}

// OpenThumbnailCache opens an in-memory BadgerDB
func OpenThumbnailCache(logger domain.Logger) (*ThumbnailCache, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(badgerLogger{logger}).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open thumbnail cache: %w", err)
	}
	return &ThumbnailCache{db: db, logger: logger}, nil
}

func sessionPrefix(sessionID string) []byte {
	return []byte("thumb/" + sessionID + "/")
}

func thumbnailKey(sessionID string, originalIndex int) []byte {
	return fmt.Appendf(sessionPrefix(sessionID), "%d", originalIndex)
}

// Put stores the PNG thumbnail of one original page
func (c *ThumbnailCache) Put(sessionID string, originalIndex int, png []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(thumbnailKey(sessionID, originalIndex), png)
	})
}

// Get returns a copy of a stored thumbnail
func (c *ThumbnailCache) Get(sessionID string, originalIndex int) ([]byte, error) {
	var out []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(thumbnailKey(sessionID, originalIndex))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrThumbnailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail: %w", err)
	}
	return out, nil
}

// Release deletes every thumbnail of a session. Keys are deleted one by one
// since DropPrefix blocks writes to the whole database while it runs.
func (c *ThumbnailCache) Release(sessionID string) error {
	prefix := sessionPrefix(sessionID)
	var keys [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to list thumbnails: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	wb := c.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return fmt.Errorf("failed to release thumbnails: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to release thumbnails: %w", err)
	}
	c.logger.Debug("Thumbnails released", "session_id", sessionID, "count", len(keys))
	return nil
}

// Close closes the underlying database
func (c *ThumbnailCache) Close() error {
	return c.db.Close()
}

// badgerLogger routes Badger's printf-style logging through the app logger
type badgerLogger struct {
	logger domain.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error("badger", errors.New(strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn("badger: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug("badger: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug("badger: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}
