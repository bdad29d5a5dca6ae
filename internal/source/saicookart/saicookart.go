// Package saicookart loads the lunch menu from the Sai CookArt REST API.
package saicookart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mittagsplan/loader/internal/core/domain"
	"github.com/mittagsplan/loader/internal/core/htmltext"
	"github.com/mittagsplan/loader/internal/source"
)

// lunchCategoryID is the upstream category for lunch menus.
const lunchCategoryID = 2

// Config holds the Sai CookArt endpoint.
type Config struct {
	APIURL string
}

// Source is the Sai CookArt menu adapter.
type Source struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func New(cfg Config, client *http.Client, log *slog.Logger) *Source {
	return &Source{cfg: cfg, http: client, log: log}
}

func (s *Source) Name() string { return "sai-cookart" }

// Wire shapes of the foods endpoint.
type apiFood struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       apiAmount   `json:"price"`
	Category    apiCategory `json:"category"`
	Options     []apiOption `json:"options"`
}

type apiCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type apiOption struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PricePickup apiAmount `json:"pricePickup"`
}

// apiAmount accepts the upstream's decimal amounts whether they arrive as
// JSON strings ("8.50") or bare numbers.
type apiAmount string

func (a *apiAmount) UnmarshalJSON(data []byte) error {
	*a = apiAmount(strings.Trim(string(data), `"`))
	return nil
}

// Load fetches active lunch foods and maps them to the unified shape.
// A food with options becomes an item with a nil base price and one
// option per record; a food without options carries its own price.
// Zero-price foods without options are the upstream's a-la-carte marker
// and are dropped.
func (s *Source) Load(ctx context.Context) ([]source.Item, error) {
	foods, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var items []source.Item
	for _, f := range foods {
		if f.Category.ID != lunchCategoryID {
			continue
		}

		item, err := s.mapFood(f)
		if err != nil {
			s.log.Warn("skipping invalid food record",
				"food", f.Name, "error", err)
			continue
		}
		if item.Price != nil && item.Price.Amount == 0 {
			s.log.Debug("skipping a-la-carte food without fixed price", "food", f.Name)
			continue
		}

		items = append(items, source.Item{
			ID:       fmt.Sprintf("%s/%d", domain.RestaurantIDSaiCookArt, f.ID),
			MenuItem: item,
		})
	}
	return items, nil
}

func (s *Source) fetch(ctx context.Context) ([]apiFood, error) {
	u, err := url.Parse(s.cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("parse menu URL: %w", err)
	}
	q := u.Query()
	q.Set("active", "true")
	q.Set("category", strconv.Itoa(lunchCategoryID))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create menu request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("menu request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Error("menu endpoint returned non-success status",
			"status", resp.StatusCode, "reason", resp.Status)
		return nil, fmt.Errorf("unexpected menu response: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read menu response: %w", err)
	}

	var foods []apiFood
	if err := json.Unmarshal(raw, &foods); err != nil {
		s.log.Error("menu response is not a valid food array", "error", err)
		return nil, fmt.Errorf("decode menu response: %w", err)
	}
	return foods, nil
}

func (s *Source) mapFood(f apiFood) (domain.MenuItem, error) {
	item := domain.MenuItem{
		Restaurant:  domain.RestaurantIDSaiCookArt,
		Name:        strings.TrimSpace(f.Name),
		Description: htmltext.Strip(f.Description),
		Options:     []domain.MenuItemOption{},
	}

	if len(f.Options) == 0 {
		amount, err := parseAmount(f.Price)
		if err != nil {
			return domain.MenuItem{}, fmt.Errorf("price: %w", err)
		}
		item.Price = &domain.Money{Amount: amount, Currency: domain.DefaultCurrency}
	} else {
		for _, opt := range f.Options {
			amount, err := parseAmount(opt.PricePickup)
			if err != nil {
				return domain.MenuItem{}, fmt.Errorf("option %q price: %w", opt.Name, err)
			}
			item.Options = append(item.Options, domain.MenuItemOption{
				Name:        strings.TrimSpace(opt.Name),
				Description: htmltext.Strip(opt.Description),
				Price:       domain.Money{Amount: amount, Currency: domain.DefaultCurrency},
			})
		}
	}

	if err := item.Validate(); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

// parseAmount coerces the upstream's decimal strings ("8.50") to major
// currency units. This upstream already reports major units; no cent
// conversion happens here.
func parseAmount(n apiAmount) (float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" || s == "null" {
		return 0, fmt.Errorf("missing amount")
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return amount, nil
}
