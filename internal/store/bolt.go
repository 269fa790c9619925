//go:build bolt

package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/params"
	"go.etcd.io/bbolt"
)

const defaultFile = params.BoltFile

const (
	boltBucketPokemon  = "pokemon"   // key: big-endian ID -> Pokemon JSON
	boltBucketSyncRuns = "sync_runs" // key: big-endian sequence -> SyncRun JSON
)

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt creates a new Bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketPokemon)); err != nil {
			return err
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketSyncRuns)); err != nil {
			return err
		}

		return nil
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

func initDB(path string) (Store, error) {
	return NewBolt(path)
}

// idKey encodes id big-endian so cursor order is ID order.
func idKey(id int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))

	return k
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) UpsertPokemon(p *model.Pokemon) error {
	if p == nil {
		return errors.New("pokemon is required")
	}

	if p.ID <= 0 {
		return fmt.Errorf("invalid pokemon id %d", p.ID)
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketPokemon))

		next := *p
		next.Sprite, next.Shiny, next.Favorite = nil, nil, false

		if v := bucket.Get(idKey(p.ID)); v != nil {
			var existing model.Pokemon
			if err := json.Unmarshal(v, &existing); err != nil {
				return err
			}

			next.Favorite = existing.Favorite
			next.Sprite = existing.Sprite
			next.Shiny = existing.Shiny
		}

		data, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		return bucket.Put(idKey(p.ID), data)
	})
}

func (b *Bolt) GetPokemon(id int) (*model.Pokemon, error) {
	var p *model.Pokemon

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketPokemon)).Get(idKey(id))
		if v == nil {
			return ErrNotFound
		}

		var r model.Pokemon
		if err := json.Unmarshal(v, &r); err != nil {
			return err
		}

		p = &r

		return nil
	})

	return p, err
}

func (b *Bolt) eachPokemon(fn func(p model.Pokemon)) error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketPokemon)).ForEach(func(k, v []byte) error {
			var r model.Pokemon

			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}

			fn(r)

			return nil
		})
	})
}

func (b *Bolt) GetAllPokemon() ([]model.Pokemon, error) {
	var out []model.Pokemon

	err := b.eachPokemon(func(p model.Pokemon) {
		out = append(out, p)
	})

	return out, err
}

func (b *Bolt) ListPokemonIDs() ([]int, error) {
	var ids []int

	err := b.storage.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketPokemon)).ForEach(func(k, v []byte) error {
			ids = append(ids, int(binary.BigEndian.Uint64(k)))
			return nil
		})
	})

	return ids, err
}

func (b *Bolt) CountPokemon() (int, error) {
	var count int

	err := b.storage.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(boltBucketPokemon)).Stats().KeyN
		return nil
	})

	return count, err
}

// update applies fn to the stored record for id and writes it back.
func (b *Bolt) update(id int, fn func(p *model.Pokemon)) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketPokemon))

		v := bucket.Get(idKey(id))
		if v == nil {
			return ErrNotFound
		}

		var r model.Pokemon
		if err := json.Unmarshal(v, &r); err != nil {
			return err
		}

		fn(&r)

		data, err := json.Marshal(&r)
		if err != nil {
			return err
		}

		return bucket.Put(idKey(id), data)
	})
}

func (b *Bolt) SetFavorite(id int, fav bool) error {
	return b.update(id, func(p *model.Pokemon) {
		p.Favorite = fav
	})
}

func (b *Bolt) ToggleFavorite(id int) (bool, error) {
	var fav bool

	err := b.update(id, func(p *model.Pokemon) {
		p.Favorite = !p.Favorite
		fav = p.Favorite
	})

	return fav, err
}

func (b *Bolt) ListMissingSprites() ([]model.Pokemon, error) {
	var out []model.Pokemon

	err := b.eachPokemon(func(p model.Pokemon) {
		if !p.HasSprites() {
			out = append(out, p)
		}
	})

	return out, err
}

func (b *Bolt) SaveSprites(id int, sprite, shiny []byte) error {
	return b.update(id, func(p *model.Pokemon) {
		p.Sprite = sprite
		p.Shiny = shiny
	})
}

func (b *Bolt) SaveSyncRun(run *model.SyncRun) error {
	if run == nil {
		return errors.New("sync run is required")
	}

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketSyncRuns))

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		return bucket.Put(idKey(int(seq)), data)
	})
}

func (b *Bolt) LastSyncRun(kind model.SyncKind) (*model.SyncRun, error) {
	var last *model.SyncRun

	err := b.storage.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(boltBucketSyncRuns)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var r model.SyncRun
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}

			if r.Kind != kind {
				continue
			}

			if last == nil || r.FinishedAt.After(last.FinishedAt) {
				last = &r
			}
		}

		return nil
	})

	return last, err
}
