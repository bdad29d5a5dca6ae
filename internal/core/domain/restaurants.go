package domain

import "strings"

type RestaurantID string
type RestaurantName string

const (
	// Restaurant IDs (slugs, the referential-integrity boundary)
	RestaurantIDPlazaEurest RestaurantID = "plaza-eurest"
	RestaurantIDFourOhFour  RestaurantID = "4oh4"
	RestaurantIDDalPino     RestaurantID = "trattoria-dal-pino"
	RestaurantIDSaiCookArt  RestaurantID = "sai-cookart"

	// Restaurant display names
	RestaurantNamePlazaEurest RestaurantName = "Plaza Eurest"
	RestaurantNameFourOhFour  RestaurantName = "4oh4"
	RestaurantNameDalPino     RestaurantName = "Trattoria Dal Pino"
	RestaurantNameSaiCookArt  RestaurantName = "Sai CookArt"
)

// KnownRestaurants maps every valid RestaurantID to its display name.
// Menu items referencing a slug outside this set are dropped with a warning.
var KnownRestaurants = map[RestaurantID]RestaurantName{
	RestaurantIDPlazaEurest: RestaurantNamePlazaEurest,
	RestaurantIDFourOhFour:  RestaurantNameFourOhFour,
	RestaurantIDDalPino:     RestaurantNameDalPino,
	RestaurantIDSaiCookArt:  RestaurantNameSaiCookArt,
}

// IsKnownRestaurant reports whether id is in the closed restaurant set.
func IsKnownRestaurant(id RestaurantID) bool {
	_, ok := KnownRestaurants[id]
	return ok
}

// Slugify derives a restaurant slug from a display name: lower-cased,
// trimmed, runs of non-alphanumeric characters collapsed to a single "-".
func Slugify(name string) RestaurantID {
	var b strings.Builder
	prevDash := true // suppress a leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return RestaurantID(strings.TrimSuffix(b.String(), "-"))
}
