package query

import (
	"testing"
	"time"

	"dealer-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fuel(f models.FuelType) *models.FuelType { return &f }

func testInventory() []models.Vehicle {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Vehicle{
		{ID: "v1", Make: "BMW", Model: "M4", Year: 2024, Price: 89_900_000, Mileage: 5_000, FuelType: fuel(models.FuelGasoline), CreatedAt: base.Add(3 * time.Hour)},
		{ID: "v2", Make: "Toyota", Model: "Corolla", Year: 2015, Price: 7_200_000, Mileage: 88_000, FuelType: fuel(models.FuelHybrid), CreatedAt: base.Add(2 * time.Hour)},
		{ID: "v3", Make: "Tesla", Model: "Model 3", Year: 2023, Price: 120_000_000, Mileage: 12_000, FuelType: fuel(models.FuelElectric), CreatedAt: base.Add(1 * time.Hour)},
		{ID: "v4", Make: "BMW", Model: "320i", Year: 2020, Price: 50_000_000, Mileage: 45_000, FuelType: fuel(models.FuelGasoline), CreatedAt: base},
	}
}

func ids(vehicles []models.Vehicle) []string {
	out := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.ID)
	}
	return out
}

func TestApplyDefaultCriteria(t *testing.T) {
	vehicles := testInventory()

	result := Apply(vehicles, Criteria{})

	// Everything matches, newest creation first.
	assert.Equal(t, []string{"v1", "v2", "v3", "v4"}, ids(result))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	vehicles := testInventory()

	Apply(vehicles, Criteria{Sort: SortPriceLow})

	assert.Equal(t, []string{"v1", "v2", "v3", "v4"}, ids(vehicles))
}

func TestApplyTermMatching(t *testing.T) {
	vehicles := testInventory()

	t.Run("MatchesMakeCaseInsensitive", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Term: "bmw"})
		assert.Equal(t, []string{"v1", "v4"}, ids(result))
	})

	t.Run("MatchesModelSubstring", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Term: "coro"})
		assert.Equal(t, []string{"v2"}, ids(result))
	})

	t.Run("MatchesYearDigits", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Term: "2015"})
		assert.Equal(t, []string{"v2"}, ids(result))
	})

	t.Run("NoMatch", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Term: "lamborghini"})
		assert.Empty(t, result)
	})

	t.Run("EmptyTermMatchesAll", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Term: ""})
		assert.Len(t, result, 4)
	})
}

func TestApplyFacetFilters(t *testing.T) {
	vehicles := testInventory()

	t.Run("MakeFilter", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Make: "BMW"})
		assert.Equal(t, []string{"v1", "v4"}, ids(result))
	})

	t.Run("MakeAllSentinel", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Make: All})
		assert.Len(t, result, 4)
	})

	t.Run("FuelFilter", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Fuel: "Electric"})
		assert.Equal(t, []string{"v3"}, ids(result))
	})

	t.Run("FuelFilterSkipsUnsetFuelType", func(t *testing.T) {
		noFuel := append(testInventory(), models.Vehicle{ID: "v5", Make: "Ford", Model: "Ranger", Year: 2019, Price: 30_000_000})
		result := Apply(noFuel, Criteria{Fuel: "Gasoline"})
		assert.Equal(t, []string{"v1", "v4"}, ids(result))
	})

	t.Run("UnknownFilterValueYieldsZeroMatches", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Make: "Bugatti"})
		assert.Empty(t, result)
	})

	t.Run("FiltersCombineAsAND", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Make: "BMW", Term: "320"})
		assert.Equal(t, []string{"v4"}, ids(result))
	})
}

func TestApplyPriceBandBoundaries(t *testing.T) {
	vehicles := testInventory()

	t.Run("Under50M", func(t *testing.T) {
		result := Apply(vehicles, Criteria{PriceBand: BandUnder50M})
		// v4 sits exactly at 50,000,000 and must be excluded.
		assert.Equal(t, []string{"v2"}, ids(result))
	})

	t.Run("50MTo100MIncludesLowerBound", func(t *testing.T) {
		result := Apply(vehicles, Criteria{PriceBand: Band50To100M})
		assert.Equal(t, []string{"v1", "v4"}, ids(result))
	})

	t.Run("ExactUpperBoundMovesToOver100M", func(t *testing.T) {
		boundary := []models.Vehicle{{ID: "b1", Make: "Audi", Model: "RS7", Year: 2024, Price: 100_000_000}}
		assert.Empty(t, Apply(boundary, Criteria{PriceBand: Band50To100M}))
		assert.Len(t, Apply(boundary, Criteria{PriceBand: BandOver100M}), 1)
	})

	t.Run("Over100M", func(t *testing.T) {
		result := Apply(vehicles, Criteria{PriceBand: BandOver100M})
		assert.Equal(t, []string{"v3"}, ids(result))
	})
}

func TestApplySorting(t *testing.T) {
	vehicles := testInventory()

	t.Run("PriceLow", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Sort: SortPriceLow})
		assert.Equal(t, []string{"v2", "v4", "v1", "v3"}, ids(result))
	})

	t.Run("PriceHigh", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Sort: SortPriceHigh})
		assert.Equal(t, []string{"v3", "v1", "v4", "v2"}, ids(result))
	})

	t.Run("YearNew", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Sort: SortYearNew})
		assert.Equal(t, []string{"v1", "v3", "v4", "v2"}, ids(result))
	})

	t.Run("YearOld", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Sort: SortYearOld})
		assert.Equal(t, []string{"v2", "v4", "v3", "v1"}, ids(result))
	})

	t.Run("MileageLow", func(t *testing.T) {
		result := Apply(vehicles, Criteria{Sort: SortMileageLow})
		assert.Equal(t, []string{"v1", "v3", "v4", "v2"}, ids(result))
	})
}

func TestApplySortIsStable(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	vehicles := []models.Vehicle{
		{ID: "a", Make: "Kia", Model: "Rio", Year: 2021, Price: 10_000_000, CreatedAt: created},
		{ID: "b", Make: "Kia", Model: "Picanto", Year: 2021, Price: 10_000_000, CreatedAt: created},
		{ID: "c", Make: "Kia", Model: "Sportage", Year: 2021, Price: 10_000_000, CreatedAt: created},
	}

	for _, key := range []string{SortNewest, SortPriceLow, SortPriceHigh, SortYearNew, SortYearOld, SortMileageLow} {
		result := Apply(vehicles, Criteria{Sort: key})
		assert.Equal(t, []string{"a", "b", "c"}, ids(result), "sort %q must keep input order on ties", key)
	}
}

func TestApplyEmptyCollection(t *testing.T) {
	result := Apply(nil, Criteria{Term: "bmw", Sort: SortPriceLow})
	assert.Empty(t, result)
}

func TestDeriveFacets(t *testing.T) {
	vehicles := testInventory()

	facets := DeriveFacets(vehicles)

	assert.Equal(t, []string{"BMW", "Tesla", "Toyota"}, facets.Makes)
	assert.Equal(t, []string{"Electric", "Gasoline", "Hybrid"}, facets.FuelTypes)
}

func TestDeriveFacetsIgnoresUnsetFuelType(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: "v1", Make: "Ford", Model: "Ranger", Year: 2019, Price: 30_000_000},
	}

	facets := DeriveFacets(vehicles)

	assert.Equal(t, []string{"Ford"}, facets.Makes)
	assert.Empty(t, facets.FuelTypes)
}

func TestGalleryEndToEnd(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	vehicles := []models.Vehicle{
		{ID: "bmw", Make: "BMW", Model: "M4", Year: 2024, Price: 89_900_000, CreatedAt: created.Add(time.Hour)},
		{ID: "toyota", Make: "Toyota", Model: "Corolla", Year: 2015, Price: 7_200_000, CreatedAt: created},
	}

	byMake := Apply(vehicles, Criteria{Make: "BMW", Sort: SortPriceHigh})
	require.Len(t, byMake, 1)
	assert.Equal(t, "bmw", byMake[0].ID)

	byBand := Apply(vehicles, Criteria{PriceBand: BandUnder50M})
	require.Len(t, byBand, 1)
	assert.Equal(t, "toyota", byBand[0].ID)
}
