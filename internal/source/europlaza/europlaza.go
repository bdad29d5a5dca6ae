// Package europlaza loads weekday menus from the Europlaza GraphQL API,
// authenticating via OAuth2 client credentials.
package europlaza

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mittagsplan/loader/internal/core/domain"
	"github.com/mittagsplan/loader/internal/core/htmltext"
	"github.com/mittagsplan/loader/internal/infra/store"
	"github.com/mittagsplan/loader/internal/source"
)

const menuQuery = `query ($limit: Int!, $offset: Int!, $from: String!, $to: String!) {
    restaurants: getAllRestaurants(limit: $limit, offset: $offset) {
        id
        name
        weekdayMenus(startDate: $from, endDate: $to) {
            id
            date
            menuItems {
                id
                title
                content
                price
                currency
            }
        }
    }
}`

const defaultPageLimit = 32768

// Config holds the Europlaza endpoints and credentials.
type Config struct {
	TokenURL    string
	APIURL      string
	Credentials Credentials
	PageLimit   int
}

// Source is the Europlaza menu adapter.
type Source struct {
	cfg    Config
	http   *http.Client
	log    *slog.Logger
	tokens *tokenSource
	loc    *time.Location
	now    func() time.Time
}

// New creates the adapter. The metadata store backs the token cache; the
// HTTP client is shared with the token exchange.
func New(cfg Config, client *http.Client, meta store.MetaStore, log *slog.Logger, loc *time.Location) *Source {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = defaultPageLimit
	}
	now := time.Now
	return &Source{
		cfg:  cfg,
		http: client,
		log:  log,
		tokens: &tokenSource{
			http:  client,
			meta:  meta,
			log:   log,
			url:   cfg.TokenURL,
			creds: cfg.Credentials,
			now:   now,
		},
		loc: loc,
		now: now,
	}
}

func (s *Source) Name() string { return "europlaza" }

// Wire shapes of the GraphQL response.
type apiResponse struct {
	Data *struct {
		Restaurants []apiRestaurant `json:"restaurants"`
	} `json:"data"`
}

type apiRestaurant struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	WeekdayMenus []apiMenu `json:"weekdayMenus"`
}

type apiMenu struct {
	ID        int64         `json:"id"`
	Date      string        `json:"date"`
	MenuItems []apiMenuItem `json:"menuItems"`
}

type apiMenuItem struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Price    int64  `json:"price"` // minor units (cents)
	Currency string `json:"currency"`
}

// Load queries all restaurants with today's weekday menus and maps them
// to the unified shape. Restaurants whose slug is outside the known set
// are skipped with a warning; individual items failing validation are
// skipped too. HTTP and whole-payload failures are returned for retry.
func (s *Source) Load(ctx context.Context) ([]source.Item, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	restaurants, err := s.query(ctx, token)
	if err != nil {
		return nil, err
	}

	var items []source.Item
	for _, r := range restaurants {
		slug := domain.Slugify(r.Name)
		if !domain.IsKnownRestaurant(slug) {
			s.log.Warn("skipping unknown restaurant",
				"restaurant", r.Name, "slug", slug)
			continue
		}

		for _, menu := range r.WeekdayMenus {
			for _, mi := range menu.MenuItems {
				item := s.mapItem(slug, mi)
				if err := item.Validate(); err != nil {
					s.log.Warn("skipping invalid menu item",
						"restaurant", slug, "item", mi.Title, "error", err)
					continue
				}
				items = append(items, source.Item{
					ID:       fmt.Sprintf("%s/%d/%d", slug, menu.ID, mi.ID),
					MenuItem: item,
				})
			}
		}
	}
	return items, nil
}

func (s *Source) query(ctx context.Context, token string) ([]apiRestaurant, error) {
	from, to := dayBounds(s.now().In(s.loc))

	body, err := json.Marshal(map[string]any{
		"query": menuQuery,
		"variables": map[string]any{
			"limit":  s.cfg.PageLimit,
			"offset": 0,
			"from":   from.Format(time.RFC3339),
			"to":     to.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create menu request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

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

	var payload apiResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.log.Error("menu response is not valid JSON",
			"error", err, "body", snippet(raw))
		return nil, fmt.Errorf("decode menu response: %w", err)
	}
	if payload.Data == nil || payload.Data.Restaurants == nil {
		s.log.Error("menu response has invalid structure: missing data.restaurants",
			"body", snippet(raw))
		return nil, fmt.Errorf("menu response has invalid structure")
	}
	return payload.Data.Restaurants, nil
}

func (s *Source) mapItem(slug domain.RestaurantID, mi apiMenuItem) domain.MenuItem {
	currency := strings.ToUpper(strings.TrimSpace(mi.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return domain.MenuItem{
		Restaurant:  slug,
		Name:        htmltext.Strip(mi.Title),
		Description: htmltext.Strip(mi.Content),
		Price: &domain.Money{
			// Upstream reports integer cents.
			Amount:   float64(mi.Price) / 100,
			Currency: currency,
		},
		Options: []domain.MenuItemOption{},
	}
}

// dayBounds returns the calendar day's start and end in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Second)
	return start, end
}

func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
