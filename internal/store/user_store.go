package store

import (
	"strings"
	"sync"
	"time"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
)

// UserStore holds all user records for the lifetime of the process.
// Every read-modify-write sequence, including id assignment and the
// uniqueness check, runs under the store's lock.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int]*model.User
	nextID int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[int]*model.User),
		nextID: 1,
	}
}

// Create inserts a new user. Username and email must be unique; the
// check and the insert are a single critical section so two concurrent
// registrations cannot both pass it.
func (s *UserStore) Create(username, email, passwordHash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return model.User{}, apperr.Conflict("Username or email already exists")
		}
	}

	u := &model.User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.nextID++
	s.users[u.ID] = u

	return *u, nil
}

// FindByUsernameOrEmail returns the user whose username or email
// matches login. Emails are stored lower-cased, so the email
// comparison is case-insensitive.
func (s *UserStore) FindByUsernameOrEmail(login string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(login)
	for _, u := range s.users {
		if u.Username == login || u.Email == lower {
			return *u, true
		}
	}
	return model.User{}, false
}

// FindByEmail returns the user with the given (lower-cased) email.
func (s *UserStore) FindByEmail(email string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == lower {
			return *u, true
		}
	}
	return model.User{}, false
}

// SetResetCode stores a reset code and its expiry on the user record.
func (s *UserStore) SetResetCode(userID int, code string, expires time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return false
	}
	u.ResetCode = code
	u.ResetExpires = expires
	return true
}

// ResetPassword swaps in a new password hash if the given code is
// still the active, unexpired one, then clears the reset state. The
// re-check runs under the lock so a code can be consumed at most once.
func (s *UserStore) ResetPassword(userID int, code string, now time.Time, newHash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return false
	}
	if u.ResetCode == "" || u.ResetCode != code || now.After(u.ResetExpires) {
		return false
	}
	u.PasswordHash = newHash
	u.ResetCode = ""
	u.ResetExpires = time.Time{}
	return true
}
