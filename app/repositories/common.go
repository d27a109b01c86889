package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix         = "user:"
	PostKeyPrefix         = "post:"
	CommentKeyPrefix      = "comment:"
	NotificationKeyPrefix = "notification:"

	// Secondary index prefixes, each mapping a normalized value to a user id
	EmailIndexPrefix    = "email:"
	UsernameIndexPrefix = "username:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey         = "seq:user"
	PostSeqKey         = "seq:post"
	CommentSeqKey      = "seq:comment"
	NotificationSeqKey = "seq:notification"
)

func userKey(id int) []byte    { return []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id)) }
func postKey(id int) []byte    { return []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id)) }
func commentKey(id int) []byte { return []byte(fmt.Sprintf("%s%d", CommentKeyPrefix, id)) }

// notificationPrefix scopes a recipient's notifications; ids are zero padded
// so key order matches creation order.
func notificationPrefix(toUser int) []byte {
	return []byte(fmt.Sprintf("%s%d:", NotificationKeyPrefix, toUser))
}

func notificationKey(toUser, id int) []byte {
	return []byte(fmt.Sprintf("%s%d:%010d", NotificationKeyPrefix, toUser, id))
}

func emailIndexKey(email string) []byte {
	return []byte(EmailIndexPrefix + strings.ToLower(email))
}

func usernameIndexKey(username string) []byte {
	return []byte(UsernameIndexPrefix + strings.ToLower(username))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		id = 1
	} else if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	} else {
		err = item.Value(func(val []byte) error {
			id, err = strconv.Atoi(string(val))
			if err != nil {
				return fmt.Errorf("failed to parse sequence: %w", err)
			}
			id++
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	// Update the sequence
	if err := txn.Set([]byte(seqKey), []byte(strconv.Itoa(id))); err != nil {
		return 0, fmt.Errorf("failed to update sequence: %w", err)
	}

	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the JSON document stored at key into v, translating a
// missing key into ErrNotFound.
func getEntity(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, v)
	})
}

// setEntity stores v as JSON at key
func setEntity(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := marshalEntity(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// exists reports whether key is present
func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanPrefix decodes every value under prefix with decode, in key order.
func scanPrefix(txn *badger.Txn, prefix []byte, decode func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(decode); err != nil {
			return err
		}
	}
	return nil
}
