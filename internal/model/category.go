package model

import "strings"

// Category is a spending category assigned to a parsed receipt.
type Category string

// The fixed set of categories the classifier may assign.
const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryGroceries      Category = "Groceries"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryUtilities      Category = "Utilities"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryTravel         Category = "Travel"
	CategoryFitness        Category = "Fitness"
	CategoryPersonalCare   Category = "Personal Care"
	CategoryHomeGarden     Category = "Home & Garden"
	CategoryBusiness       Category = "Business"
	CategoryInsurance      Category = "Insurance"
	CategoryGiftsDonations Category = "Gifts & Donations"
	CategorySubscriptions  Category = "Subscriptions"
	CategoryOther          Category = "Other"
)

var allCategories = []Category{
	CategoryFoodDining,
	CategoryGroceries,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryEducation,
	CategoryTravel,
	CategoryFitness,
	CategoryPersonalCare,
	CategoryHomeGarden,
	CategoryBusiness,
	CategoryInsurance,
	CategoryGiftsDonations,
	CategorySubscriptions,
	CategoryOther,
}

// Categories returns every valid category in a stable order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// CategoryNames returns the category labels as plain strings,
// in the same order as Categories.
func CategoryNames() []string {
	out := make([]string, len(allCategories))
	for i, c := range allCategories {
		out[i] = string(c)
	}
	return out
}

// categoryAliases maps common label variants (LLM output drift, older data)
// to their canonical category.
var categoryAliases = map[string]Category{
	"food and dining":     CategoryFoodDining,
	"dining":              CategoryFoodDining,
	"restaurants":         CategoryFoodDining,
	"grocery":             CategoryGroceries,
	"transport":           CategoryTransportation,
	"transit":             CategoryTransportation,
	"health":              CategoryHealthcare,
	"medical":             CategoryHealthcare,
	"gym":                 CategoryFitness,
	"home and garden":     CategoryHomeGarden,
	"gifts and donations": CategoryGiftsDonations,
	"donations":           CategoryGiftsDonations,
	"subscription":        CategorySubscriptions,
	"misc":                CategoryOther,
	"miscellaneous":       CategoryOther,
	"unknown":             CategoryOther,
}

// CanonicalizeCategory maps an arbitrary label onto the fixed category set.
// The boolean reports whether the label was recognized; unrecognized labels
// map to CategoryOther.
func CanonicalizeCategory(input string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return CategoryOther, false
	}

	for _, c := range allCategories {
		if normalized == strings.ToLower(string(c)) {
			return c, true
		}
	}

	if c, ok := categoryAliases[normalized]; ok {
		return c, true
	}

	return CategoryOther, false
}

// IsValidCategory reports whether the label maps onto the fixed category set.
func IsValidCategory(input string) bool {
	_, ok := CanonicalizeCategory(input)
	return ok
}
