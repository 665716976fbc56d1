package oddsService

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"
)

func TestProviderListEventsAndBestPrice(t *testing.T) {
	hits := 0
	server := newTestServer(t, http.StatusOK, &hits)
	defer server.Close()

	client := newTestClient(server.URL)
	cache := NewOddsCache(NewFileBackend(filepath.Join(t.TempDir(), "odds.json")), client.FetchBestOdds, DefaultCacheTTL, time.Now)
	provider := NewProvider(client, cache)
	ctx := context.Background()

	events, err := provider.ListEvents(ctx, "basketball_nba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	want := time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)
	if !events[0].CommenceTime.Equal(want) || events[0].SportKey != "basketball_nba" {
		t.Errorf("unexpected event: %+v", events[0])
	}

	book, odds := provider.BestPrice(ctx, "e1", MarketMoneyline, "basketball_nba")
	if book != "DraftKings" || odds != "-115" {
		t.Errorf("expected DraftKings -115, got %s %s", book, odds)
	}

	book, odds = provider.BestPrice(ctx, "e2", MarketMoneyline, "basketball_nba")
	if book != UnavailableSportsbook || odds != "N/A" {
		t.Errorf("expected unavailable for unpriced event, got %s %s", book, odds)
	}

	// events + one odds fetch; the second BestPrice is served from cache
	if hits != 2 {
		t.Errorf("expected 2 upstream hits, got %d", hits)
	}
}

func TestProviderBestPriceProviderDown(t *testing.T) {
	hits := 0
	server := newTestServer(t, http.StatusInternalServerError, &hits)
	defer server.Close()

	client := newTestClient(server.URL)
	cache := NewOddsCache(NewFileBackend(filepath.Join(t.TempDir(), "odds.json")), client.FetchBestOdds, DefaultCacheTTL, time.Now)
	provider := NewProvider(client, cache)

	book, odds := provider.BestPrice(context.Background(), "e1", MarketMoneyline, "basketball_nba")
	if book != UnavailableSportsbook || odds != "N/A" {
		t.Errorf("expected unavailable, got %s %s", book, odds)
	}
}
