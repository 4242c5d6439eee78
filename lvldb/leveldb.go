// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/vechain/lswap/kv"
	"github.com/vechain/lswap/metrics"
)

var _ kv.Store = (*LevelDB)(nil)

var metricBulkWrite = metrics.LazyLoadCounter("lvldb_bulk_write_count")

// Options for opening a level db.
type Options struct {
	CacheSize              int // MiB, split between block cache and write buffer
	OpenFilesCacheCapacity int
	// NoSync skips the fsync after each write. A crash may then lose
	// the most recent commits, never a part of one.
	NoSync bool
}

var readOpt = opt.ReadOptions{}

// LevelDB is the leveldb backed kv.Store.
type LevelDB struct {
	db       *leveldb.DB
	stg      storage.Storage
	writeOpt *opt.WriteOptions
}

// New opens the level db at path, creating it if missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open level db storage [%v]", path)
	}
	return open(stg, opts)
}

// NewMem creates a level db in memory.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{NoSync: true})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, 16)
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{
		db:       db,
		stg:      stg,
		writeOpt: &opt.WriteOptions{Sync: !opts.NoSync},
	}, nil
}

// IsNotFound reports whether err returned by Get means the key is missing.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get returns the value of key, or an error checkable with IsNotFound.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, &readOpt)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, ldb.writeOpt)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, ldb.writeOpt)
}

// Close closes the db and releases its storage, unlocking the path for a later New.
// Later operations all fail.
func (ldb *LevelDB) Close() error {
	if err := ldb.db.Close(); err != nil {
		ldb.stg.Close()
		return err
	}
	return ldb.stg.Close()
}

// Bulk starts a batch that is applied atomically on Write.
func (ldb *LevelDB) Bulk() kv.Bulk {
	return &bulk{ldb: ldb, batch: new(leveldb.Batch)}
}

type bulk struct {
	ldb   *LevelDB
	batch *leveldb.Batch
}

func (b *bulk) Put(key, value []byte) error {
	b.batch.Put(key, value)
	return nil
}

func (b *bulk) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *bulk) Len() int {
	return b.batch.Len()
}

// Write applies the batch and resets it for reuse.
func (b *bulk) Write() error {
	if b.batch.Len() == 0 {
		return nil
	}
	if err := b.ldb.db.Write(b.batch, b.ldb.writeOpt); err != nil {
		return err
	}
	metricBulkWrite().Add(1)
	b.batch.Reset()
	return nil
}
