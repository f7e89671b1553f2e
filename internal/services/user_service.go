package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
	"cryptodash/internal/store"
)

// userService handles user registration, login, and subscription changes.
type userService struct {
	store store.Storage
}

// NewUserService creates a new UserServicer.
func NewUserService(s store.Storage) UserServicer {
	return &userService{store: s}
}

// RegisterUser creates a new account with a hashed password. Usernames are
// kept verbatim; emails are normalized to lowercase before the store's
// uniqueness check so "A@x.com" and "a@x.com" collide.
func (s *userService) RegisterUser(username, email, password, externalAuthID string, plan models.Plan) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username is required")
	}
	if email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email is required")
	}
	if password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Password is required")
	}
	if plan != "" && !plan.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown plan: "+string(plan))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.store.CreateUser(store.NewUser{
		Username:       username,
		Email:          email,
		Password:       string(hashed),
		ExternalAuthID: externalAuthID,
		Plan:           plan,
	})
}

// GetUserByID returns the user or ErrUserNotFound.
func (s *userService) GetUserByID(id int) (*models.User, error) {
	user, ok := s.store.GetUser(id)
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// GetUserByUsername returns the user or ErrUserNotFound.
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	user, ok := s.store.GetUserByUsername(username)
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// GetUserByExternalAuthID returns the user linked to an external identity,
// or ErrUserNotFound.
func (s *userService) GetUserByExternalAuthID(authID string) (*models.User, error) {
	user, ok := s.store.GetUserByExternalAuthID(authID)
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// AttemptLogin authenticates by username and password. Both failure modes
// return ErrInvalidCredentials so callers cannot probe for usernames.
func (s *userService) AttemptLogin(username, password string) (*models.User, error) {
	user, ok := s.store.GetUserByUsername(username)
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// ActivateSubscription records the billing processor's ids and moves the
// user onto the paid plan. The processor interaction itself happens outside
// this service.
func (s *userService) ActivateSubscription(userID int, customerID, subscriptionID string, plan models.Plan) (*models.User, error) {
	if plan == "" {
		plan = models.PlanPro
	}
	if !plan.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown plan: "+string(plan))
	}

	if _, err := s.store.UpdateUserBillingInfo(userID, customerID, subscriptionID); err != nil {
		return nil, err
	}
	return s.store.UpdateUserPlan(userID, plan)
}

// CancelSubscription moves a subscribed user back to the starter plan. The
// recorded billing ids are kept for the processor's records.
func (s *userService) CancelSubscription(userID int) (*models.User, error) {
	user, ok := s.store.GetUser(userID)
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if user.BillingSubscriptionID == "" {
		return nil, apperrors.ErrNoSubscription
	}
	return s.store.UpdateUserPlan(userID, models.PlanStarter)
}
