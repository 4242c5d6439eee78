// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"sync"
)

// Bucket is a key prefix that carves a logical namespace out of a store.
type Bucket string

// NewStore returns a store whose keys all live under the bucket prefix of src.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucket: b, src: src}
}

// key calls fn with the prefixed key held in a pooled buffer.
// fn must not retain the key.
func (b Bucket) key(key []byte, fn func(k []byte) error) error {
	buf := keyPool.Get().(*keyBuf)
	defer keyPool.Put(buf)
	buf.k = append(append(buf.k[:0], b...), key...)
	return fn(buf.k)
}

type bucketStore struct {
	bucket Bucket
	src    Store
}

func (s *bucketStore) Get(key []byte) (val []byte, err error) {
	err = s.bucket.key(key, func(k []byte) (err error) {
		val, err = s.src.Get(k)
		return
	})
	return
}

func (s *bucketStore) Has(key []byte) (has bool, err error) {
	err = s.bucket.key(key, func(k []byte) (err error) {
		has, err = s.src.Has(k)
		return
	})
	return
}

func (s *bucketStore) IsNotFound(err error) bool { return s.src.IsNotFound(err) }

func (s *bucketStore) Put(key, val []byte) error {
	return s.bucket.key(key, func(k []byte) error { return s.src.Put(k, val) })
}

func (s *bucketStore) Delete(key []byte) error {
	return s.bucket.key(key, s.src.Delete)
}

func (s *bucketStore) Bulk() Bulk {
	return &bucketBulk{bucket: s.bucket, bulk: s.src.Bulk()}
}

type bucketBulk struct {
	bucket Bucket
	bulk   Bulk
}

func (b *bucketBulk) Put(key, val []byte) error {
	return b.bucket.key(key, func(k []byte) error { return b.bulk.Put(k, val) })
}

func (b *bucketBulk) Delete(key []byte) error {
	return b.bucket.key(key, b.bulk.Delete)
}

func (b *bucketBulk) Len() int { return b.bulk.Len() }
func (b *bucketBulk) Write() error { return b.bulk.Write() }

type keyBuf struct {
	k []byte
}

var keyPool = sync.Pool{
	New: func() any {
		return &keyBuf{}
	},
}
