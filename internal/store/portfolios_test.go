package store_test

import (
	"testing"
	"time"

	"cryptodash/internal/store"
	"cryptodash/internal/testutil"
)

// settableClock lets tests inject arbitrary, including out-of-order,
// creation timestamps.
type settableClock struct {
	current time.Time
}

func newSettableClock() *settableClock {
	return &settableClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *settableClock) Now() time.Time { return c.current }

func (c *settableClock) Set(t time.Time) { c.current = t }

func (c *settableClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func TestCreatePortfolio(t *testing.T) {
	t.Run("defaults_chain_id_to_sepolia", func(t *testing.T) {
		s := store.New()
		user := testutil.CreateTestUser(t, s)

		p := s.CreatePortfolio(store.NewPortfolio{UserID: user.ID, WalletAddress: "0xABC"})
		if p.ChainID != store.DefaultChainID {
			t.Errorf("expected chain id %s, got %s", store.DefaultChainID, p.ChainID)
		}
		if p.AssetsCount != 0 {
			t.Errorf("expected zero assets count, got %d", p.AssetsCount)
		}
		if p.LastUpdated.IsZero() || p.CreatedAt.IsZero() {
			t.Error("expected both timestamps stamped")
		}
	})

	t.Run("keeps_explicit_chain_id", func(t *testing.T) {
		s := store.New()
		user := testutil.CreateTestUser(t, s)

		p := s.CreatePortfolio(store.NewPortfolio{UserID: user.ID, WalletAddress: "0xABC", ChainID: "0x1"})
		if p.ChainID != "0x1" {
			t.Errorf("expected chain id 0x1, got %s", p.ChainID)
		}
	})
}

func TestGetPortfolioByUserAndWallet(t *testing.T) {
	s := store.New()
	user := testutil.CreateTestUser(t, s)
	s.CreatePortfolio(store.NewPortfolio{UserID: user.ID, WalletAddress: "0xAbCdEf"})

	t.Run("case_insensitive_match", func(t *testing.T) {
		if _, ok := s.GetPortfolioByUserAndWallet(user.ID, "0XABCDEF"); !ok {
			t.Error("expected case-insensitive wallet match")
		}
	})

	t.Run("scoped_to_owner", func(t *testing.T) {
		other := testutil.CreateTestUser(t, s)
		if _, ok := s.GetPortfolioByUserAndWallet(other.ID, "0xAbCdEf"); ok {
			t.Error("must not match another user's portfolio")
		}
	})
}

func TestOwnershipScoping(t *testing.T) {
	s := store.New()
	alice := testutil.CreateTestUser(t, s)
	bob := testutil.CreateTestUser(t, s)

	// Same wallet address tracked by both users.
	s.CreatePortfolio(store.NewPortfolio{UserID: alice.ID, WalletAddress: "0xSHARED"})
	s.CreatePortfolio(store.NewPortfolio{UserID: bob.ID, WalletAddress: "0xSHARED"})
	s.CreatePortfolio(store.NewPortfolio{UserID: bob.ID, WalletAddress: "0xOTHER"})

	alicePortfolios := s.GetUserPortfolios(alice.ID)
	if len(alicePortfolios) != 1 {
		t.Fatalf("expected 1 portfolio for alice, got %d", len(alicePortfolios))
	}
	for _, p := range alicePortfolios {
		if p.UserID != alice.ID {
			t.Errorf("portfolio %d belongs to user %d, not alice", p.ID, p.UserID)
		}
	}
	if got := len(s.GetUserPortfolios(bob.ID)); got != 2 {
		t.Errorf("expected 2 portfolios for bob, got %d", got)
	}
}

func TestUpdatePortfolio(t *testing.T) {
	t.Run("merges_partial_and_refreshes_last_updated", func(t *testing.T) {
		clock := newSettableClock()
		s := store.New(store.WithClock(clock.Now))
		user := testutil.CreateTestUser(t, s)
		p := s.CreatePortfolio(store.NewPortfolio{UserID: user.ID, WalletAddress: "0xABC"})

		clock.Advance(time.Minute)
		totalValue := "1234.56"
		assetsCount := 3
		updated, err := s.UpdatePortfolio(p.ID, store.PortfolioUpdate{
			TotalValue:  &totalValue,
			AssetsCount: &assetsCount,
		})
		testutil.AssertNoError(t, err)

		if updated.TotalValue != "1234.56" || updated.AssetsCount != 3 {
			t.Errorf("partial update not applied: %+v", updated)
		}
		if updated.WalletAddress != "0xABC" {
			t.Error("untouched fields must survive a partial update")
		}
		if !updated.LastUpdated.After(p.LastUpdated) {
			t.Error("expected LastUpdated to be refreshed")
		}
	})

	t.Run("unknown_id", func(t *testing.T) {
		s := store.New()
		_, err := s.UpdatePortfolio(999, store.PortfolioUpdate{})
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})
}

func TestDeletePortfolioCascades(t *testing.T) {
	s := store.New()
	user := testutil.CreateTestUser(t, s)
	p := testutil.CreateTestPortfolio(t, s, user.ID)
	keep := testutil.CreateTestPortfolio(t, s, user.ID)

	s.CreatePortfolioAssets([]store.NewPortfolioAsset{
		{PortfolioID: p.ID, Symbol: "ETH", Name: "Ethereum", Amount: "1", Value: "3000", Percentage: "60", Change: "1.2", IsNative: true},
		{PortfolioID: p.ID, Symbol: "USDC", Name: "USD Coin", Amount: "2000", Value: "2000", Percentage: "40", Change: "0"},
		{PortfolioID: keep.ID, Symbol: "ETH", Name: "Ethereum", Amount: "2", Value: "6000", Percentage: "100", Change: "1.2", IsNative: true},
	})
	s.CreateAnalysis(store.NewAnalysis{PortfolioID: p.ID, OverallScore: 70})
	s.CreateAnalysis(store.NewAnalysis{PortfolioID: keep.ID, OverallScore: 90})

	s.DeletePortfolio(p.ID)

	if assets := s.GetPortfolioAssets(p.ID); len(assets) != 0 {
		t.Errorf("expected no assets after cascade, got %d", len(assets))
	}
	if _, ok := s.GetLatestAnalysis(p.ID); ok {
		t.Error("expected no analysis after cascade")
	}
	for _, remaining := range s.GetUserPortfolios(user.ID) {
		if remaining.ID == p.ID {
			t.Error("deleted portfolio still listed")
		}
	}

	// Siblings are untouched.
	if assets := s.GetPortfolioAssets(keep.ID); len(assets) != 1 {
		t.Errorf("sibling portfolio lost assets: got %d", len(assets))
	}
	if _, ok := s.GetLatestAnalysis(keep.ID); !ok {
		t.Error("sibling portfolio lost its analysis")
	}
}

func TestDeletePortfolioIdempotent(t *testing.T) {
	s := store.New()
	// Unknown id is a no-op, not an error.
	s.DeletePortfolio(999)
	s.DeletePortfolio(999)
}

func TestReplaceAssetsIdempotent(t *testing.T) {
	s := store.New()
	user := testutil.CreateTestUser(t, s)
	p := testutil.CreateTestPortfolio(t, s, user.ID)

	snapshot := []store.NewPortfolioAsset{
		{PortfolioID: p.ID, Symbol: "ETH", Name: "Ethereum", Amount: "1", Value: "3000", Percentage: "75", Change: "1.2", IsNative: true},
		{PortfolioID: p.ID, Symbol: "LINK", Name: "Chainlink", Amount: "50", Value: "1000", Percentage: "25", Change: "-0.4", ContractAddress: "0x514910771af9ca656af840dff83e8264ecf986ca"},
	}

	replace := func() {
		s.DeletePortfolioAssets(p.ID)
		s.CreatePortfolioAssets(snapshot)
	}

	replace()
	first := s.GetPortfolioAssets(p.ID)
	replace()
	second := s.GetPortfolioAssets(p.ID)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 assets after each replace, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Symbol != second[i].Symbol ||
			first[i].Amount != second[i].Amount ||
			first[i].Value != second[i].Value ||
			first[i].ContractAddress != second[i].ContractAddress ||
			first[i].IsNative != second[i].IsNative {
			t.Errorf("replace not idempotent in content at index %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLatestAnalysisWins(t *testing.T) {
	clock := newSettableClock()
	s := store.New(store.WithClock(clock.Now))
	user := testutil.CreateTestUser(t, s)
	p := testutil.CreateTestPortfolio(t, s, user.ID)

	base := clock.Now()

	// Insert out of creation-time order: the later timestamp goes in first.
	clock.Set(base.Add(2 * time.Hour))
	newest := s.CreateAnalysis(store.NewAnalysis{PortfolioID: p.ID, OverallScore: 85})
	clock.Set(base.Add(1 * time.Hour))
	s.CreateAnalysis(store.NewAnalysis{PortfolioID: p.ID, OverallScore: 80})

	latest, ok := s.GetLatestAnalysis(p.ID)
	if !ok {
		t.Fatal("expected a latest analysis")
	}
	if latest.ID != newest.ID || latest.OverallScore != 85 {
		t.Errorf("expected analysis %d (score 85) as latest, got %d (score %d)",
			newest.ID, latest.ID, latest.OverallScore)
	}
}

func TestAnalysisHistory(t *testing.T) {
	clock := newSettableClock()
	s := store.New(store.WithClock(clock.Now))
	user := testutil.CreateTestUser(t, s)
	p1 := testutil.CreateTestPortfolio(t, s, user.ID)
	p2 := testutil.CreateTestPortfolio(t, s, user.ID)
	stranger := testutil.CreateTestUser(t, s)
	p3 := testutil.CreateTestPortfolio(t, s, stranger.ID)

	for i := 0; i < 3; i++ {
		clock.Advance(time.Minute)
		s.CreateAnalysis(store.NewAnalysis{PortfolioID: p1.ID, OverallScore: 60 + i})
	}
	clock.Advance(time.Minute)
	s.CreateAnalysis(store.NewAnalysis{PortfolioID: p2.ID, OverallScore: 99})
	clock.Advance(time.Minute)
	s.CreateAnalysis(store.NewAnalysis{PortfolioID: p3.ID, OverallScore: 10})

	t.Run("descending_across_portfolios_scoped_to_user", func(t *testing.T) {
		history := s.GetUserAnalysisHistory(user.ID, 10)
		if len(history) != 4 {
			t.Fatalf("expected 4 analyses, got %d", len(history))
		}
		if history[0].OverallScore != 99 {
			t.Errorf("expected newest first (score 99), got %d", history[0].OverallScore)
		}
		for i := 1; i < len(history); i++ {
			if history[i].CreatedAt.After(history[i-1].CreatedAt) {
				t.Error("history not in descending creation order")
			}
		}
		for _, a := range history {
			if a.PortfolioID == p3.ID {
				t.Error("history leaked another user's analysis")
			}
		}
	})

	t.Run("truncates_to_limit", func(t *testing.T) {
		if got := len(s.GetUserAnalysisHistory(user.ID, 2)); got != 2 {
			t.Errorf("expected limit 2, got %d", got)
		}
	})

	t.Run("append_does_not_mutate_existing", func(t *testing.T) {
		before := s.GetUserAnalysisHistory(user.ID, 1)[0]
		clock.Advance(time.Minute)
		s.CreateAnalysis(store.NewAnalysis{PortfolioID: p1.ID, OverallScore: 1})
		after := s.GetUserAnalysisHistory(user.ID, 10)

		found := false
		for _, a := range after {
			if a.ID == before.ID {
				found = true
				if a.OverallScore != before.OverallScore || !a.CreatedAt.Equal(before.CreatedAt) {
					t.Error("existing analysis mutated by a later append")
				}
			}
		}
		if !found {
			t.Error("existing analysis disappeared after append")
		}
	})
}

// TestPortfolioLifecycleScenario walks the end-to-end flow: user, portfolio,
// assets, two analyses with distinct timestamps, then a cascading delete.
func TestPortfolioLifecycleScenario(t *testing.T) {
	clock := newSettableClock()
	s := store.New(store.WithClock(clock.Now))

	alice, err := s.CreateUser(store.NewUser{Username: "alice", Email: "a@x.com"})
	testutil.AssertNoError(t, err)

	p := s.CreatePortfolio(store.NewPortfolio{UserID: alice.ID, WalletAddress: "0xABC"})

	s.CreatePortfolioAssets([]store.NewPortfolioAsset{
		{PortfolioID: p.ID, Symbol: "ETH", Name: "Ethereum", Amount: "1.5", Value: "4500", Percentage: "50", Change: "2.1", IsNative: true},
		{PortfolioID: p.ID, Symbol: "USDC", Name: "USD Coin", Amount: "3000", Value: "3000", Percentage: "33", Change: "0"},
		{PortfolioID: p.ID, Symbol: "LINK", Name: "Chainlink", Amount: "75", Value: "1500", Percentage: "17", Change: "-1.3"},
	})
	if got := len(s.GetPortfolioAssets(p.ID)); got != 3 {
		t.Fatalf("expected 3 assets, got %d", got)
	}

	s.CreateAnalysis(store.NewAnalysis{PortfolioID: p.ID, OverallScore: 80})
	clock.Advance(time.Hour)
	s.CreateAnalysis(store.NewAnalysis{PortfolioID: p.ID, OverallScore: 85})

	latest, ok := s.GetLatestAnalysis(p.ID)
	if !ok || latest.OverallScore != 85 {
		t.Fatalf("expected latest analysis score 85, got %+v ok=%v", latest, ok)
	}

	s.DeletePortfolio(p.ID)

	if got := len(s.GetPortfolioAssets(p.ID)); got != 0 {
		t.Errorf("expected no assets after delete, got %d", got)
	}
	if _, ok := s.GetLatestAnalysis(p.ID); ok {
		t.Error("expected no analysis after delete")
	}
	if got := len(s.GetUserPortfolios(alice.ID)); got != 0 {
		t.Errorf("expected no portfolios after delete, got %d", got)
	}
}

func TestPortfolioCopyIsolation(t *testing.T) {
	s := store.New()
	user := testutil.CreateTestUser(t, s)
	p := testutil.CreateTestPortfolio(t, s, user.ID)

	p.WalletAddress = "0xMUTATED"

	stored, ok := s.GetPortfolioByUserAndWallet(user.ID, "0xMUTATED")
	if ok {
		t.Fatalf("mutating a returned portfolio leaked into the store: %+v", stored)
	}
}
