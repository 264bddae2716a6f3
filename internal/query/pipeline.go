package query

import (
	"sort"
	"strconv"
	"strings"

	"dealer-backend/internal/models"
)

// Sentinel value meaning "no filter" for make, fuel and price band.
const All = "all"

// Price band identifiers. Bands are lower-inclusive, upper-exclusive with
// boundaries at 50,000,000 and 100,000,000.
const (
	BandUnder50M = "under-50m"
	Band50To100M = "50m-100m"
	BandOver100M = "over-100m"

	priceBandLow  = 50_000_000
	priceBandHigh = 100_000_000
)

// Sort keys. SortNewest is the default: creation time descending.
const (
	SortNewest     = "newest"
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortYearNew    = "year-new"
	SortYearOld    = "year-old"
	SortMileageLow = "mileage-low"
)

// Criteria is everything the gallery lets a visitor narrow the inventory by.
// Zero values (empty term, empty or "all" filters, empty sort) match and
// order the full collection.
type Criteria struct {
	Term      string
	Make      string
	Fuel      string
	PriceBand string
	Sort      string
}

// Apply filters and orders vehicles by c. The input slice is never mutated;
// the result is a fresh slice. All filters combine as a logical AND and the
// sort is stable, so equal keys keep their input order.
func Apply(vehicles []models.Vehicle, c Criteria) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if Matches(v, c) {
			out = append(out, v)
		}
	}
	sortVehicles(out, c.Sort)
	return out
}

// Matches reports whether a single vehicle satisfies every active filter.
func Matches(v models.Vehicle, c Criteria) bool {
	return matchesTerm(v, c.Term) &&
		matchesMake(v, c.Make) &&
		matchesFuel(v, c.Fuel) &&
		matchesPriceBand(v, c.PriceBand)
}

// matchesTerm checks the free-text term against make, model and the decimal
// year, case-insensitively. An empty term matches everything.
func matchesTerm(v models.Vehicle, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(v.Make), needle) ||
		strings.Contains(strings.ToLower(v.Model), needle) ||
		strings.Contains(strconv.Itoa(v.Year), needle)
}

func matchesMake(v models.Vehicle, mk string) bool {
	return mk == "" || mk == All || v.Make == mk
}

func matchesFuel(v models.Vehicle, fuel string) bool {
	if fuel == "" || fuel == All {
		return true
	}
	return v.FuelType != nil && string(*v.FuelType) == fuel
}

func matchesPriceBand(v models.Vehicle, band string) bool {
	switch band {
	case BandUnder50M:
		return v.Price < priceBandLow
	case Band50To100M:
		return v.Price >= priceBandLow && v.Price < priceBandHigh
	case BandOver100M:
		return v.Price >= priceBandHigh
	default:
		return true
	}
}

// sortVehicles applies exactly one comparator. Stability matters: the default
// gallery order relies on insertion-order tie-breaking.
func sortVehicles(vehicles []models.Vehicle, key string) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Price < vehicles[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Price > vehicles[j].Price
		})
	case SortYearNew:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Year > vehicles[j].Year
		})
	case SortYearOld:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Year < vehicles[j].Year
		})
	case SortMileageLow:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Mileage < vehicles[j].Mileage
		})
	default: // SortNewest
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt)
		})
	}
}

// Facets are the live filter options derived from the full collection, never
// narrowed by the active criteria, so a visitor can always re-select any make
// even after filtering down to zero results.
type Facets struct {
	Makes     []string `json:"makes"`
	FuelTypes []string `json:"fuel_types"`
}

// DeriveFacets collects the distinct makes and fuel types present in
// vehicles, lexicographically sorted.
func DeriveFacets(vehicles []models.Vehicle) Facets {
	makeSet := make(map[string]struct{})
	fuelSet := make(map[string]struct{})
	for _, v := range vehicles {
		makeSet[v.Make] = struct{}{}
		if v.FuelType != nil {
			fuelSet[string(*v.FuelType)] = struct{}{}
		}
	}

	facets := Facets{
		Makes:     make([]string, 0, len(makeSet)),
		FuelTypes: make([]string, 0, len(fuelSet)),
	}
	for m := range makeSet {
		facets.Makes = append(facets.Makes, m)
	}
	for f := range fuelSet {
		facets.FuelTypes = append(facets.FuelTypes, f)
	}
	sort.Strings(facets.Makes)
	sort.Strings(facets.FuelTypes)
	return facets
}
