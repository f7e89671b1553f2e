package services

import (
	"testing"

	"cryptodash/internal/models"
	"cryptodash/internal/store"
	"cryptodash/internal/testutil"
)

func TestRegisterUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := NewUserService(store.New())

		user, err := svc.RegisterUser("alice", "Alice@Example.com", "s3cret", "", "")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Plan != models.PlanStarter {
			t.Errorf("expected starter plan, got %s", user.Plan)
		}
		if user.Password == "s3cret" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		svc := NewUserService(store.New())

		_, err := svc.RegisterUser("alice", "a@x.com", "pw", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.RegisterUser("alice", "b@x.com", "pw", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("duplicate_email_case_insensitive", func(t *testing.T) {
		svc := NewUserService(store.New())

		_, err := svc.RegisterUser("alice", "a@x.com", "pw", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.RegisterUser("bob", "A@X.com", "pw", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		svc := NewUserService(store.New())

		_, err := svc.RegisterUser("", "a@x.com", "pw", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.RegisterUser("alice", "", "pw", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.RegisterUser("alice", "a@x.com", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_plan", func(t *testing.T) {
		svc := NewUserService(store.New())

		_, err := svc.RegisterUser("alice", "a@x.com", "pw", "", "platinum")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := NewUserService(store.New())
		registered, err := svc.RegisterUser("alice", "a@x.com", "s3cret", "", "")
		testutil.AssertNoError(t, err)

		user, err := svc.AttemptLogin("alice", "s3cret")
		testutil.AssertNoError(t, err)
		if user.ID != registered.ID {
			t.Errorf("expected user %d, got %d", registered.ID, user.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		svc := NewUserService(store.New())
		_, err := svc.RegisterUser("alice", "a@x.com", "s3cret", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin("alice", "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_username", func(t *testing.T) {
		svc := NewUserService(store.New())

		_, err := svc.AttemptLogin("nobody", "pw")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestGetUserByExternalAuthID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := NewUserService(store.New())
		registered, err := svc.RegisterUser("alice", "a@x.com", "pw", "privy-123", "")
		testutil.AssertNoError(t, err)

		user, err := svc.GetUserByExternalAuthID("privy-123")
		testutil.AssertNoError(t, err)
		if user.ID != registered.ID {
			t.Errorf("expected user %d, got %d", registered.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc := NewUserService(store.New())

		_, err := svc.GetUserByExternalAuthID("privy-missing")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestSubscriptionLifecycle(t *testing.T) {
	t.Run("activate_defaults_to_pro", func(t *testing.T) {
		s := store.New()
		svc := NewUserService(s)
		user := testutil.CreateTestUser(t, s)

		updated, err := svc.ActivateSubscription(user.ID, "cus_123", "sub_456", "")
		testutil.AssertNoError(t, err)

		if updated.Plan != models.PlanPro {
			t.Errorf("expected pro plan, got %s", updated.Plan)
		}
		if updated.BillingCustomerID != "cus_123" || updated.BillingSubscriptionID != "sub_456" {
			t.Error("expected billing ids to be recorded")
		}
	})

	t.Run("cancel_returns_to_starter", func(t *testing.T) {
		s := store.New()
		svc := NewUserService(s)
		user := testutil.CreateTestUser(t, s)

		_, err := svc.ActivateSubscription(user.ID, "cus_123", "sub_456", models.PlanEnterprise)
		testutil.AssertNoError(t, err)

		updated, err := svc.CancelSubscription(user.ID)
		testutil.AssertNoError(t, err)

		if updated.Plan != models.PlanStarter {
			t.Errorf("expected starter plan after cancel, got %s", updated.Plan)
		}
		if updated.BillingSubscriptionID != "sub_456" {
			t.Error("expected billing ids kept after cancel")
		}
	})

	t.Run("cancel_without_subscription", func(t *testing.T) {
		s := store.New()
		svc := NewUserService(s)
		user := testutil.CreateTestUser(t, s)

		_, err := svc.CancelSubscription(user.ID)
		testutil.AssertAppError(t, err, "NO_SUBSCRIPTION")
	})

	t.Run("activate_unknown_user", func(t *testing.T) {
		svc := NewUserService(store.New())

		_, err := svc.ActivateSubscription(9999, "cus_123", "sub_456", "")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
