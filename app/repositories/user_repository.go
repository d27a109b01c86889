package repositories

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"picshare/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user and claims its email and username index entries
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		taken, err := exists(txn, emailIndexKey(user.Email))
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
		taken, err = exists(txn, usernameIndexKey(user.Username))
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateUsername
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		idBytes := []byte(strconv.Itoa(id))
		if err := txn.Set(emailIndexKey(user.Email), idBytes); err != nil {
			return err
		}
		if err := txn.Set(usernameIndexKey(user.Username), idBytes); err != nil {
			return err
		}
		return setEntity(txn, userKey(id), user)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, userKey(id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail resolves the email index and loads the user
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailIndexKey(models.NormalizeEmail(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var id int
		err = item.Value(func(val []byte) error {
			id, err = strconv.Atoi(string(val))
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to parse email index: %w", err)
		}
		return getEntity(txn, userKey(id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMany loads the users for ids, silently skipping ids that do not resolve
func (r *BadgerUserRepository) GetMany(ids []int) (map[int]*models.User, error) {
	users := make(map[int]*models.User, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if _, ok := users[id]; ok {
				continue
			}
			var user models.User
			err := getEntity(txn, userKey(id), &user)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			users[id] = &user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Search returns users whose username contains query, ignoring case, ordered by id
func (r *BadgerUserRepository) Search(query string) ([]*models.User, error) {
	users := []*models.User{}
	needle := strings.ToLower(query)
	if needle == "" {
		return users, nil
	}

	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(UserKeyPrefix), func(val []byte) error {
			var user models.User
			if err := unmarshalEntity(val, &user); err != nil {
				return err
			}
			if strings.Contains(strings.ToLower(user.Username), needle) {
				users = append(users, &user)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdatePair runs fn against both users inside a single read-write transaction.
// A concurrent writer touching either document makes the commit fail with
// badger.ErrConflict instead of leaving the pair half-updated.
func (r *BadgerUserRepository) UpdatePair(actorID, targetID int, fn func(actor, target *models.User) error) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var actor, target models.User
		if err := getEntity(txn, userKey(actorID), &actor); err != nil {
			return err
		}
		if err := getEntity(txn, userKey(targetID), &target); err != nil {
			return err
		}

		if err := fn(&actor, &target); err != nil {
			return err
		}

		if err := setEntity(txn, userKey(actor.ID), &actor); err != nil {
			return err
		}
		return setEntity(txn, userKey(target.ID), &target)
	})
}
