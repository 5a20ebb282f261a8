//go:generate go run go.uber.org/mock/mockgen -source=invocation.go -destination=../mocks/mock_invocation_repository.go -package=mocks
package repositories

import (
	"chat-bot/domain"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const InvocationPrefix = "inv:"

type IInvocationRepository interface {
	StoreInvocation(record domain.InvocationRecord) error
	GetInvocations(limit *int) ([]domain.InvocationRecord, error)
}

type InvocationRepository struct {
	db               *badger.DB
	log              *slog.Logger
	limitInvocations *int
}

func NewInvocationRepository(db *badger.DB, log *slog.Logger, limitInvocations *int) InvocationRepository {
	return InvocationRepository{db: db, log: log, limitInvocations: limitInvocations}
}

// DiskInvocation is the stored form of an invocation record.
type DiskInvocation struct {
	ID      string   `json:"id"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
	Sender  string   `json:"sender"`
	Target  string   `json:"target"`
	Outcome string   `json:"outcome"`
	Error   string   `json:"error,omitempty"`
	At      int64    `json:"at"`
}

// StoreInvocation persists a record in BadgerDB.
// The key is formatted as "inv:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Keep two invocations received at the same nanosecond apart.
func (r InvocationRepository) StoreInvocation(record domain.InvocationRecord) error {
	key := InvocationKey(record)
	bytes, err := json.Marshal(fromInvocationRecord(record))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetInvocations returns the most recent invocations first.
// limit overrides the repository limit when set; with neither, everything is returned.
func (r InvocationRepository) GetInvocations(limit *int) ([]domain.InvocationRecord, error) {
	if limit == nil {
		limit = r.limitInvocations
	}
	var records []domain.InvocationRecord
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(InvocationPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts at the greatest key lower or equal to the seek key
		seekKey := append(prefix, []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit != nil && len(records) == *limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d invocations reached", *limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				record, err := DecodeInvocation(value)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}

func InvocationKey(record domain.InvocationRecord) string {
	return fmt.Sprintf("%s%019d:%s", InvocationPrefix, record.At.UnixNano(), record.ID)
}

// DecodeInvocation reads a stored value back into a record.
func DecodeInvocation(value []byte) (domain.InvocationRecord, error) {
	var disk DiskInvocation
	if err := json.Unmarshal(value, &disk); err != nil {
		return domain.InvocationRecord{}, err
	}
	return toInvocationRecord(disk)
}

func fromInvocationRecord(record domain.InvocationRecord) DiskInvocation {
	return DiskInvocation{
		ID:      record.ID.String(),
		Command: record.Command,
		Args:    record.Args,
		Sender:  record.Sender,
		Target:  record.Target,
		Outcome: string(record.Outcome),
		Error:   record.Error,
		At:      record.At.UnixNano(),
	}
}

func toInvocationRecord(disk DiskInvocation) (domain.InvocationRecord, error) {
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.InvocationRecord{}, err
	}
	return domain.InvocationRecord{
		ID:      parsedID,
		Command: disk.Command,
		Args:    disk.Args,
		Sender:  disk.Sender,
		Target:  disk.Target,
		Outcome: domain.Outcome(disk.Outcome),
		Error:   disk.Error,
		At:      time.Unix(0, disk.At).UTC(),
	}, nil
}
