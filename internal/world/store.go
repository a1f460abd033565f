// Store persists Columns to an embedded LevelDB database, the same
// storage engine dragonfly-family servers use for their world saves (see
// oriumgames-pile/provider.go, which backs its Provider with
// github.com/df-mc/goleveldb/leveldb). Unlike Pile's multi-dimension,
// whole-world-in-memory model, Store is a flat per-column cache: the
// companion server is the generation authority, this is just a cache in
// front of it.
package world

import (
	"encoding/binary"
	"errors"

	"github.com/df-mc/goleveldb/leveldb"
)

// Store is a LevelDB-backed cache of encoded Columns, keyed by chunk
// position.
type Store struct {
	db *leveldb.DB
}

// OpenStore opens (creating if absent) a LevelDB store at dir.
func OpenStore(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func columnKey(x, z int32) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint32(key[0:4], uint32(x))
	binary.BigEndian.PutUint32(key[4:8], uint32(z))
	return key
}

// Put stores the already-encoded bytes for the column at (x, z).
func (s *Store) Put(x, z int32, encoded []byte) error {
	return s.db.Put(columnKey(x, z), encoded, nil)
}

// Get retrieves the encoded bytes for the column at (x, z), and whether it
// was present.
func (s *Store) Get(x, z int32) ([]byte, bool, error) {
	v, err := s.db.Get(columnKey(x, z), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Delete removes a column from the store, e.g. after regeneration.
func (s *Store) Delete(x, z int32) error {
	return s.db.Delete(columnKey(x, z), nil)
}
