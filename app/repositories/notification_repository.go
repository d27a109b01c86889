package repositories

import (
	"picshare/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerNotificationRepository implements NotificationRepository using BadgerDB.
// Records live under notification:<recipient>:<padded id> so a reverse prefix
// scan yields a recipient's newest notifications first.
type BadgerNotificationRepository struct {
	db *badger.DB
}

// NewBadgerNotificationRepository creates a new BadgerNotificationRepository
func NewBadgerNotificationRepository(db *badger.DB) *BadgerNotificationRepository {
	return &BadgerNotificationRepository{db: db}
}

// Create creates a new notification
func (r *BadgerNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, NotificationSeqKey)
		if err != nil {
			return err
		}
		notification.ID = id

		return setEntity(txn, notificationKey(notification.ToUser, id), notification)
	})
}

// ListByRecipient returns up to limit notifications for userID, newest first
func (r *BadgerNotificationRepository) ListByRecipient(userID, limit int) ([]*models.Notification, error) {
	notifications := []*models.Notification{}
	if limit <= 0 {
		return notifications, nil
	}

	err := r.db.View(func(txn *badger.Txn) error {
		prefix := notificationPrefix(userID)
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode Seek lands on the last key <= the seek key.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var n models.Notification
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &n)
			}); err != nil {
				return err
			}
			notifications = append(notifications, &n)
			if len(notifications) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllRead flags every unread notification of userID as read and returns how many changed
func (r *BadgerNotificationRepository) MarkAllRead(userID int) (int, error) {
	updated := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		var unread []*models.Notification
		err := scanPrefix(txn, notificationPrefix(userID), func(val []byte) error {
			var n models.Notification
			if err := unmarshalEntity(val, &n); err != nil {
				return err
			}
			if !n.Read {
				unread = append(unread, &n)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, n := range unread {
			n.Read = true
			if err := setEntity(txn, notificationKey(n.ToUser, n.ID), n); err != nil {
				return err
			}
		}
		updated = len(unread)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
