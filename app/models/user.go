package models

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}

	if u.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate normalizes identity fields and stamps creation times
func (u *User) BeforeCreate() {
	u.Email = NormalizeEmail(u.Email)
	u.Username = strings.TrimSpace(u.Username)
	u.FullName = strings.TrimSpace(u.FullName)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.UpdatedAt = u.CreatedAt
	if u.Followers == nil {
		u.Followers = []int{}
	}
	if u.Following == nil {
		u.Following = []int{}
	}
}

// NormalizeEmail returns the canonical form used for lookups and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsFollowing reports whether u follows the user with the given id.
func (u *User) IsFollowing(id int) bool {
	return slices.Contains(u.Following, id)
}

// Follow records that u now follows target and target is followed by u.
// Both sides are updated so the back-references stay symmetric.
func (u *User) Follow(target *User) {
	u.Following = addID(u.Following, target.ID)
	target.Followers = addID(target.Followers, u.ID)
	u.touch()
	target.touch()
}

// Unfollow removes the relationship from both sides.
func (u *User) Unfollow(target *User) {
	u.Following = removeID(u.Following, target.ID)
	target.Followers = removeID(target.Followers, u.ID)
	u.touch()
	target.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}

// addID appends id unless it is already present.
func addID(ids []int, id int) []int {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

// removeID drops every occurrence of id, preserving order of the rest.
func removeID(ids []int, id int) []int {
	return slices.DeleteFunc(slices.Clone(ids), func(v int) bool { return v == id })
}
