// Package bolt provides the local durable file store implementations of the
// domain repositories. All writes run inside bbolt update transactions, which
// bbolt serializes; that single-writer property is what gives this backend
// its compare-and-set and atomic-increment guarantees.
package bolt

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// view abstracts over "run against the database" and "run inside an already
// open transaction". Repositories bound to a transaction (see WithTx on each
// repository) share that transaction's atomicity.
type view struct {
	db *bolt.DB
	tx *bolt.Tx
}

func (v view) update(fn func(tx *bolt.Tx) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	return v.db.Update(fn)
}

func (v view) read(fn func(tx *bolt.Tx) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	return v.db.View(fn)
}

func putJSON(b *bolt.Bucket, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := b.Put([]byte(key), data); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func decodeValue(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode stored value: %w", err)
	}
	return nil
}

func getJSON(b *bolt.Bucket, key string, out interface{}) (bool, error) {
	data := b.Get([]byte(key))
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}
