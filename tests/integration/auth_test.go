package integration

import (
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/auth/register",
		`{"username":"alice","email":"alice@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["token"].(string) == "" {
		t.Fatal("expected a token from registration")
	}

	rec = app.request("POST", "/api/v1/auth/login",
		`{"username":"alice","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	token := parseJSON(t, rec)["token"].(string)

	rec = app.request("GET", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["username"] != "alice" {
		t.Errorf("expected username alice, got %v", user["username"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password hash leaked in profile response")
	}
}

func TestAuthFlow_DuplicateUsername(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/auth/register",
		`{"username":"bob","email":"bob@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/auth/register",
		`{"username":"bob","email":"other@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "DUPLICATE_USERNAME" {
		t.Errorf("expected DUPLICATE_USERNAME, got %v", errObj["code"])
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/auth/register",
		`{"username":"carol","email":"carol@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/auth/login",
		`{"username":"carol","password":"wrong-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", errObj["code"])
	}

	rec = app.request("POST", "/api/v1/auth/login",
		`{"username":"nobody","password":"password123"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown username, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_ProtectedRouteWithoutToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/portfolios", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBillingFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t)

	rec := app.request("POST", "/api/v1/billing/subscription",
		`{"customer_id":"cus_123","subscription_id":"sub_456","plan":"pro"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate failed: %d %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["plan"] != "pro" {
		t.Errorf("expected pro plan, got %v", user["plan"])
	}

	rec = app.request("DELETE", "/api/v1/billing/subscription", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel failed: %d %s", rec.Code, rec.Body.String())
	}
	user = parseJSON(t, rec)["user"].(map[string]interface{})
	if user["plan"] != "starter" {
		t.Errorf("expected starter plan after cancel, got %v", user["plan"])
	}

	// Billing ids are kept after cancel, so a second cancel still finds the
	// subscription id and downgrades the already-starter user again.
	rec = app.request("DELETE", "/api/v1/billing/subscription", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("second cancel failed: %d %s", rec.Code, rec.Body.String())
	}
}
