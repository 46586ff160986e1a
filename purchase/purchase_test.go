package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var tiers = []Plan{
	{ID: 3, Name: "ELITE", Price: 39.99, Escudos: 160},
	{ID: 1, Name: "CADETE", Price: 9.99, Escudos: 30},
	{ID: 2, Name: "OPERADOR", Price: 19.99, Escudos: 80},
}

func TestResolveAffordable(t *testing.T) {
	opts := Resolve(150, nil, CoursePricing{Price: 50, EscudosPrice: 100}, tiers)

	assert.True(t, opts.CanPayWithEscudos)
	assert.Equal(t, uint(0), opts.EscudosNeeded)
	assert.True(t, opts.CanPayWithMoney)
}

func TestResolveShortfall(t *testing.T) {
	opts := Resolve(50, nil, CoursePricing{Price: 50, EscudosPrice: 100}, tiers)

	assert.False(t, opts.CanPayWithEscudos)
	assert.Equal(t, uint(50), opts.EscudosNeeded)
	assert.True(t, opts.CanPayWithMoney)

	// A tier granting +80 escudos covers the 50-escudo shortfall
	assert.Len(t, opts.UpgradeOptions, 3)
	operador := opts.UpgradeOptions[1]
	assert.Equal(t, "OPERADOR", operador.Plan.Name)
	assert.Equal(t, uint(130), operador.EscudosAfterUpgrade)
	assert.True(t, operador.CanAffordCourse)
}

func TestResolveExactBalance(t *testing.T) {
	opts := Resolve(100, nil, CoursePricing{EscudosPrice: 100}, tiers)

	assert.True(t, opts.CanPayWithEscudos)
	assert.Equal(t, uint(0), opts.EscudosNeeded)
}

func TestResolveTiersAscendingAndMonotone(t *testing.T) {
	opts := Resolve(0, nil, CoursePricing{EscudosPrice: 100}, tiers)

	assert.Len(t, opts.UpgradeOptions, 3)
	for i := 1; i < len(opts.UpgradeOptions); i++ {
		prev := opts.UpgradeOptions[i-1]
		curr := opts.UpgradeOptions[i]
		assert.Less(t, prev.Plan.Price, curr.Plan.Price)
		// Affordability never decreases as the tier price increases
		if prev.CanAffordCourse {
			assert.True(t, curr.CanAffordCourse)
		}
	}

	assert.False(t, opts.UpgradeOptions[0].CanAffordCourse) // 0+30 < 100
	assert.False(t, opts.UpgradeOptions[1].CanAffordCourse) // 0+80 < 100
	assert.True(t, opts.UpgradeOptions[2].CanAffordCourse)  // 0+160 >= 100
}

func TestResolveSkipsCurrentAndLowerTiers(t *testing.T) {
	current := tiers[2] // OPERADOR
	opts := Resolve(10, &current, CoursePricing{EscudosPrice: 100}, tiers)

	assert.Len(t, opts.UpgradeOptions, 1)
	assert.Equal(t, "ELITE", opts.UpgradeOptions[0].Plan.Name)
	assert.Equal(t, "OPERADOR", opts.CurrentPlan.Name)
}

func TestResolveTopTierHasNoUpgrades(t *testing.T) {
	current := tiers[0] // ELITE
	opts := Resolve(10, &current, CoursePricing{EscudosPrice: 100}, tiers)

	assert.Empty(t, opts.UpgradeOptions)
}

func TestResolveFreeCourse(t *testing.T) {
	opts := Resolve(0, nil, CoursePricing{}, tiers)

	assert.True(t, opts.CanPayWithEscudos)
	assert.Equal(t, uint(0), opts.EscudosNeeded)
}

func TestSuggestedEscudosPrice(t *testing.T) {
	assert.Equal(t, uint(0), SuggestedEscudosPrice(0))
	assert.Equal(t, uint(0), SuggestedEscudosPrice(-5))
	assert.Equal(t, uint(99), SuggestedEscudosPrice(49.99))
	assert.Equal(t, uint(100), SuggestedEscudosPrice(50))
	assert.Equal(t, uint(1), SuggestedEscudosPrice(0.99))
}
