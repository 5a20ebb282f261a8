//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=../mocks/mock_settings_repository.go -package=mocks
package repositories

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
)

const prefixKey = "settings:prefix"

type ISettingsRepository interface {
	SavePrefix(prefix string) error
	LoadPrefix() (string, bool, error)
}

type SettingsRepository struct {
	db *badger.DB
}

func NewSettingsRepository(db *badger.DB) ISettingsRepository {
	return &SettingsRepository{db: db}
}

// SavePrefix persists the last accepted command prefix so it survives a restart.
func (s SettingsRepository) SavePrefix(prefix string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixKey), []byte(prefix))
	})
}

// LoadPrefix returns the persisted prefix, if any.
func (s SettingsRepository) LoadPrefix() (string, bool, error) {
	var prefix string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			prefix = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return prefix, true, nil
}
