package store

import (
	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
)

// CreateUser inserts a new user. Username, email, and external auth id (when
// present) must be unique across all users; collisions fail with a conflict
// error and the insert does not happen.
func (s *MemStore) CreateUser(p NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == p.Username {
			return nil, apperrors.ErrDuplicateUsername
		}
		if u.Email == p.Email {
			return nil, apperrors.ErrDuplicateEmail
		}
		if p.ExternalAuthID != "" && u.ExternalAuthID == p.ExternalAuthID {
			return nil, apperrors.ErrDuplicateExternalUID
		}
	}

	plan := p.Plan
	if plan == "" {
		plan = models.PlanStarter
	}

	id := s.nextUserID
	s.nextUserID++

	user := &models.User{
		ID:             id,
		Username:       p.Username,
		Email:          p.Email,
		Password:       p.Password,
		ExternalAuthID: p.ExternalAuthID,
		Plan:           plan,
		CreatedAt:      s.now(),
	}
	s.users[id] = user
	return user.Clone(), nil
}

// GetUser returns the user with the given id, or ok=false when absent.
func (s *MemStore) GetUser(id int) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return user.Clone(), true
}

// GetUserByUsername returns the user with the given username.
func (s *MemStore) GetUserByUsername(username string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u.Clone(), true
		}
	}
	return nil, false
}

// GetUserByEmail returns the user with the given email.
func (s *MemStore) GetUserByEmail(email string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u.Clone(), true
		}
	}
	return nil, false
}

// GetUserByExternalAuthID returns the user linked to the given external
// identity. An empty authID never matches.
func (s *MemStore) GetUserByExternalAuthID(authID string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if authID == "" {
		return nil, false
	}
	for _, u := range s.users {
		if u.ExternalAuthID == authID {
			return u.Clone(), true
		}
	}
	return nil, false
}

// UpdateUserBillingInfo records the billing processor's customer and
// subscription ids for a user.
func (s *MemStore) UpdateUserBillingInfo(userID int, customerID, subscriptionID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user.BillingCustomerID = customerID
	user.BillingSubscriptionID = subscriptionID
	return user.Clone(), nil
}

// UpdateUserPlan changes a user's subscription tier.
func (s *MemStore) UpdateUserPlan(userID int, plan models.Plan) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user.Plan = plan
	return user.Clone(), nil
}
