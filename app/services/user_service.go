package services

import (
	"picshare/app/repositories"
)

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SearchUsers matches query against usernames ignoring case. An empty
// query matches nobody.
func (s *UserService) SearchUsers(query string) ([]UserProfile, error) {
	if query == "" {
		return []UserProfile{}, nil
	}

	users, err := s.userRepo.Search(query)
	if err != nil {
		return nil, storeError("Error searching users", err)
	}
	views := make([]UserProfile, 0, len(users))
	for _, u := range users {
		views = append(views, profileOf(u))
	}
	return views, nil
}

// GetProfile returns the public profile of a user.
func (s *UserService) GetProfile(id int) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "User not found", "Error fetching user")
	}
	view := profileOf(user)
	return &view, nil
}
