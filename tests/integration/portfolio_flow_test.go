package integration

import (
	"fmt"
	"net/http"
	"testing"
)

const testWallet = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1"

func refreshBody(wallet, totalValue string) string {
	return fmt.Sprintf(`{
		"wallet_address": %q,
		"total_value": %q,
		"total_change": "+3.2",
		"eth_balance": "2.5",
		"assets": [
			{"symbol":"ETH","name":"Ethereum","amount":"2.5","value":"8000.00","percentage":"64","is_native":true},
			{"symbol":"USDC","name":"USD Coin","amount":"4500","value":"4500.00","percentage":"36","contract_address":"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"}
		]
	}`, wallet, totalValue)
}

func TestPortfolioFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t)

	// Refresh creates the portfolio
	rec := app.request("POST", "/api/v1/portfolios/refresh", refreshBody(testWallet, "12500.00"), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	portfolio := parseJSON(t, rec)["portfolio"].(map[string]interface{})
	portfolioID := int(portfolio["id"].(float64))
	if portfolio["assets_count"].(float64) != 2 {
		t.Errorf("expected 2 assets, got %v", portfolio["assets_count"])
	}

	// Second refresh replaces, does not duplicate
	rec = app.request("POST", "/api/v1/portfolios/refresh", refreshBody(testWallet, "13000.00"), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("second refresh failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/portfolios", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	list := parseJSON(t, rec)
	if list["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 portfolio, got %v", list["total_items"])
	}
	first := list["data"].([]interface{})[0].(map[string]interface{})
	if first["total_value"] != "13000.00" {
		t.Errorf("expected updated total, got %v", first["total_value"])
	}

	// Assets reflect the latest snapshot
	rec = app.request("GET", fmt.Sprintf("/api/v1/portfolios/%d/assets", portfolioID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("assets failed: %d %s", rec.Code, rec.Body.String())
	}
	assets := parseJSON(t, rec)["assets"].([]interface{})
	if len(assets) != 2 {
		t.Errorf("expected 2 assets, got %d", len(assets))
	}

	// Record two analyses; latest wins
	for _, score := range []int{80, 85} {
		body := fmt.Sprintf(`{"overall_score":%d,"risk_level":"medium","recommendation":"hold"}`, score)
		rec = app.request("POST", fmt.Sprintf("/api/v1/portfolios/%d/analysis", portfolioID), body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("record analysis failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/portfolios/%d/analysis/latest", portfolioID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("latest analysis failed: %d %s", rec.Code, rec.Body.String())
	}
	analysis := parseJSON(t, rec)["analysis"].(map[string]interface{})
	if analysis["overall_score"].(float64) != 85 {
		t.Errorf("expected latest score 85, got %v", analysis["overall_score"])
	}

	// History holds both entries, newest first
	rec = app.request("GET", "/api/v1/analysis/history", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("history failed: %d %s", rec.Code, rec.Body.String())
	}
	history := parseJSON(t, rec)["analyses"].([]interface{})
	if len(history) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(history))
	}

	// Delete cascades
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/portfolios/%d", portfolioID), "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/portfolios/%d", portfolioID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/analysis/history", "", token)
	history = parseJSON(t, rec)["analyses"].([]interface{})
	if len(history) != 0 {
		t.Errorf("expected empty history after cascade, got %d", len(history))
	}
}

func TestPortfolioFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t)
	intruderToken, _ := app.registerUser(t)

	rec := app.request("POST", "/api/v1/portfolios/refresh", refreshBody(testWallet, "100.00"), ownerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	portfolioID := int(parseJSON(t, rec)["portfolio"].(map[string]interface{})["id"].(float64))

	// Same wallet under another account is a separate portfolio
	rec = app.request("POST", "/api/v1/portfolios/refresh", refreshBody(testWallet, "999.00"), intruderToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	otherID := int(parseJSON(t, rec)["portfolio"].(map[string]interface{})["id"].(float64))
	if otherID == portfolioID {
		t.Fatal("expected a distinct portfolio per user for the same wallet")
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/portfolios/%d", portfolioID), "", intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign portfolio, got %d", rec.Code)
	}
}
