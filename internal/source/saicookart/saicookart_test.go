package saicookart

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mittagsplan/loader/internal/core/domain"
)

func newTestSource(t *testing.T, status int, payload string) *Source {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		q := r.URL.Query()
		if q.Get("active") != "true" || q.Get("category") != "2" {
			t.Errorf("query = %s, want active=true&category=2", r.URL.RawQuery)
		}
		if status != http.StatusOK {
			http.Error(w, "upstream down", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	return New(Config{APIURL: server.URL}, server.Client(), slog.New(slog.DiscardHandler))
}

func TestLoadMapsFoodWithOptions(t *testing.T) {
	src := newTestSource(t, http.StatusOK, `[
	  {
	    "id": 1,
	    "name": "Curry",
	    "description": "mit Reis",
	    "category": {"id": 2, "name": "Lunchmenu"},
	    "price": "8.50",
	    "options": [
	      {"name": "Scharf", "description": "<i>extra scharf</i>", "pricePickup": "9.00"}
	    ]
	  }
	]`)

	items, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.ID != "sai-cookart/1" {
		t.Errorf("ID = %q, want sai-cookart/1", item.ID)
	}
	mi := item.MenuItem
	if mi.Restaurant != domain.RestaurantIDSaiCookArt {
		t.Errorf("restaurant = %q", mi.Restaurant)
	}
	if mi.Price != nil {
		t.Errorf("price = %+v, want nil because options are present", mi.Price)
	}
	if len(mi.Options) != 1 {
		t.Fatalf("got %d options, want 1", len(mi.Options))
	}
	opt := mi.Options[0]
	if opt.Name != "Scharf" {
		t.Errorf("option name = %q", opt.Name)
	}
	if opt.Description != "extra scharf" {
		t.Errorf("option description = %q, want HTML stripped", opt.Description)
	}
	if opt.Price.Amount != 9.00 || opt.Price.Currency != "EUR" {
		t.Errorf("option price = %+v, want 9.00 EUR", opt.Price)
	}
}

func TestLoadMapsFoodWithoutOptions(t *testing.T) {
	src := newTestSource(t, http.StatusOK, `[
	  {
	    "id": 2,
	    "name": "  Pad Thai  ",
	    "description": "klassisch",
	    "category": {"id": 2, "name": "Lunchmenu"},
	    "price": "10.90",
	    "options": []
	  }
	]`)

	items, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	mi := items[0].MenuItem
	if mi.Name != "Pad Thai" {
		t.Errorf("name = %q, want trimmed Pad Thai", mi.Name)
	}
	if mi.Price == nil || mi.Price.Amount != 10.90 || mi.Price.Currency != "EUR" {
		t.Errorf("price = %+v, want 10.90 EUR", mi.Price)
	}
	if len(mi.Options) != 0 {
		t.Errorf("options = %v, want none", mi.Options)
	}
}

func TestLoadFiltersNonLunchAndZeroPrice(t *testing.T) {
	src := newTestSource(t, http.StatusOK, `[
	  {"id": 3, "name": "Frühlingsrolle", "category": {"id": 1, "name": "Starter"}, "price": "4.50", "options": []},
	  {"id": 4, "name": "À la carte", "category": {"id": 2, "name": "Lunchmenu"}, "price": "0", "options": []},
	  {"id": 5, "name": "Wok Ente", "category": {"id": 2, "name": "Lunchmenu"}, "price": "11.50", "options": []}
	]`)

	items, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 || items[0].MenuItem.Name != "Wok Ente" {
		t.Errorf("got %+v, want only Wok Ente", items)
	}
}

func TestLoadSkipsRecordWithBadPrice(t *testing.T) {
	src := newTestSource(t, http.StatusOK, `[
	  {"id": 6, "name": "Kaputt", "category": {"id": 2}, "price": "not-a-number", "options": []},
	  {"id": 7, "name": "Curry", "category": {"id": 2}, "price": "8.50", "options": []}
	]`)

	items, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 || items[0].MenuItem.Name != "Curry" {
		t.Errorf("got %+v, want only the parsable Curry record", items)
	}
}

func TestLoadAcceptsNumericPrices(t *testing.T) {
	src := newTestSource(t, http.StatusOK, `[
	  {"id": 8, "name": "Curry", "category": {"id": 2}, "price": 8.5, "options": []}
	]`)

	items, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 || items[0].MenuItem.Price.Amount != 8.5 {
		t.Errorf("got %+v, want Curry at 8.5", items)
	}
}

func TestLoadFailsOnHTTPError(t *testing.T) {
	src := newTestSource(t, http.StatusServiceUnavailable, "")
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for non-success status")
	}
}

func TestLoadFailsOnMalformedPayload(t *testing.T) {
	src := newTestSource(t, http.StatusOK, `{"not": "an array"}`)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for non-array payload")
	}
}
