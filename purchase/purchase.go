// Package purchase resolves how a user may pay for a course: with their
// escudo balance, with a card, or after upgrading to a subscription plan that
// grants enough escudos. Pure computation over explicit inputs; the
// already-enrolled guard lives with the caller, ahead of any arithmetic.
package purchase

import (
	"math"
	"sort"
)

// Plan is a subscription tier: money price plus the escudos it grants.
type Plan struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Escudos uint    `json:"escudos"`
}

// CoursePricing is the dual price of a course.
type CoursePricing struct {
	Price        float64
	EscudosPrice uint
}

// UpgradeOption is a tier above the user's current plan and whether buying it
// would make the course affordable in escudos.
type UpgradeOption struct {
	Plan                Plan `json:"plan"`
	EscudosAfterUpgrade uint `json:"escudosAfterUpgrade"`
	CanAffordCourse     bool `json:"canAffordCourse"`
}

// Options is the purchase eligibility result.
type Options struct {
	CanPayWithEscudos bool            `json:"canPayWithEscudos"`
	EscudosNeeded     uint            `json:"escudosNeeded"`
	CanPayWithMoney   bool            `json:"canPayWithMoney"`
	CurrentPlan       *Plan           `json:"currentPlan"`
	UpgradeOptions    []UpgradeOption `json:"upgradeOptions"`
}

// Resolve computes purchase eligibility. currentPlan may be nil (no plan);
// tiers is the fixed plan table in any order. Upgrade options are the tiers
// priced above the current plan, ascending by money price.
func Resolve(balance uint, currentPlan *Plan, course CoursePricing, tiers []Plan) Options {
	opts := Options{
		CanPayWithEscudos: balance >= course.EscudosPrice,
		CanPayWithMoney:   true,
		CurrentPlan:       currentPlan,
		UpgradeOptions:    []UpgradeOption{},
	}

	if !opts.CanPayWithEscudos {
		opts.EscudosNeeded = course.EscudosPrice - balance
	}

	sorted := make([]Plan, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	for _, tier := range sorted {
		if currentPlan != nil && tier.Price <= currentPlan.Price {
			continue
		}
		after := balance + tier.Escudos
		opts.UpgradeOptions = append(opts.UpgradeOptions, UpgradeOption{
			Plan:                tier,
			EscudosAfterUpgrade: after,
			CanAffordCourse:     after >= course.EscudosPrice,
		})
	}

	return opts
}

// SuggestedEscudosPrice is the advisory conversion applied at course-authoring
// time when no explicit escudos price is given: floor(price / 0.50).
func SuggestedEscudosPrice(price float64) uint {
	if price <= 0 {
		return 0
	}
	return uint(math.Floor(price / 0.50))
}
