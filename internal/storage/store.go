package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	preferencesBucket = []byte("preferences")
	themeKey          = []byte("theme")
)

// Store is the client-local preference store. It holds exactly one value,
// the theme preference.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(preferencesBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetTheme returns the persisted theme preference. ok is false when no
// preference has been written yet.
func (s *Store) GetTheme() (theme string, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(preferencesBucket).Get(themeKey)
		if data == nil {
			return nil
		}
		theme = string(data)
		ok = true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("reading theme preference: %w", err)
	}
	return theme, ok, nil
}

func (s *Store) SaveTheme(theme string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(preferencesBucket).Put(themeKey, []byte(theme))
	})
	if err != nil {
		return fmt.Errorf("saving theme preference: %w", err)
	}
	return nil
}
