package classifier

import (
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/Veraticus/the-receipts-must-flow/internal/model"
	"github.com/Veraticus/the-receipts-must-flow/internal/textutil"
)

// Rule-path confidence constants. Exact merchant hits outrank keyword votes,
// which outrank the unmatched fallback.
const (
	merchantTableConfidence = 0.9
	merchantMatchThreshold  = 0.92
	noMatchConfidence       = 0.3
	keywordBaseConfidence   = 0.5
	keywordHitBonus         = 0.05
	keywordLengthBonus      = 0.025
	maxRuleConfidence       = 0.95
)

// merchantTable maps well-known merchant names directly to a category.
// Matched fuzzily against individual merchant-name tokens so store numbers
// and suffixes don't defeat the lookup.
var merchantTable = map[string]model.Category{
	"starbucks":  model.CategoryFoodDining,
	"mcdonalds":  model.CategoryFoodDining,
	"chipotle":   model.CategoryFoodDining,
	"dunkin":     model.CategoryFoodDining,
	"subway":     model.CategoryFoodDining,
	"walmart":    model.CategoryGroceries,
	"kroger":     model.CategoryGroceries,
	"safeway":    model.CategoryGroceries,
	"costco":     model.CategoryGroceries,
	"aldi":       model.CategoryGroceries,
	"wholefoods": model.CategoryGroceries,
	"uber":       model.CategoryTransportation,
	"lyft":       model.CategoryTransportation,
	"shell":      model.CategoryTransportation,
	"chevron":    model.CategoryTransportation,
	"exxon":      model.CategoryTransportation,
	"amazon":     model.CategoryShopping,
	"target":     model.CategoryShopping,
	"ebay":       model.CategoryShopping,
	"ikea":       model.CategoryHomeGarden,
	"homedepot":  model.CategoryHomeGarden,
	"lowes":      model.CategoryHomeGarden,
	"netflix":    model.CategorySubscriptions,
	"spotify":    model.CategorySubscriptions,
	"hulu":       model.CategorySubscriptions,
	"cvs":        model.CategoryHealthcare,
	"walgreens":  model.CategoryHealthcare,
	"marriott":   model.CategoryTravel,
	"hilton":     model.CategoryTravel,
	"delta":      model.CategoryTravel,
	"united":     model.CategoryTravel,
	"sephora":    model.CategoryPersonalCare,
	"ulta":       model.CategoryPersonalCare,
}

// keywordRules vote on a category wherever a keyword appears as a whole word
// in the merchant name or description.
var keywordRules = []struct {
	keyword  string
	category model.Category
}{
	{"restaurant", model.CategoryFoodDining},
	{"cafe", model.CategoryFoodDining},
	{"coffee", model.CategoryFoodDining},
	{"starbucks", model.CategoryFoodDining},
	{"pizza", model.CategoryFoodDining},
	{"burger", model.CategoryFoodDining},
	{"diner", model.CategoryFoodDining},
	{"bakery", model.CategoryFoodDining},
	{"sushi", model.CategoryFoodDining},
	{"grill", model.CategoryFoodDining},
	{"bar", model.CategoryFoodDining},
	{"taco", model.CategoryFoodDining},
	{"deli", model.CategoryFoodDining},
	{"grocery", model.CategoryGroceries},
	{"supermarket", model.CategoryGroceries},
	{"market", model.CategoryGroceries},
	{"foods", model.CategoryGroceries},
	{"produce", model.CategoryGroceries},
	{"gas", model.CategoryTransportation},
	{"fuel", model.CategoryTransportation},
	{"uber", model.CategoryTransportation},
	{"lyft", model.CategoryTransportation},
	{"taxi", model.CategoryTransportation},
	{"parking", model.CategoryTransportation},
	{"transit", model.CategoryTransportation},
	{"toll", model.CategoryTransportation},
	{"store", model.CategoryShopping},
	{"mall", model.CategoryShopping},
	{"outlet", model.CategoryShopping},
	{"boutique", model.CategoryShopping},
	{"clothing", model.CategoryShopping},
	{"shoes", model.CategoryShopping},
	{"electronics", model.CategoryShopping},
	{"cinema", model.CategoryEntertainment},
	{"theater", model.CategoryEntertainment},
	{"theatre", model.CategoryEntertainment},
	{"arcade", model.CategoryEntertainment},
	{"bowling", model.CategoryEntertainment},
	{"concert", model.CategoryEntertainment},
	{"electric", model.CategoryUtilities},
	{"water", model.CategoryUtilities},
	{"internet", model.CategoryUtilities},
	{"wireless", model.CategoryUtilities},
	{"utility", model.CategoryUtilities},
	{"telecom", model.CategoryUtilities},
	{"pharmacy", model.CategoryHealthcare},
	{"clinic", model.CategoryHealthcare},
	{"dental", model.CategoryHealthcare},
	{"hospital", model.CategoryHealthcare},
	{"optical", model.CategoryHealthcare},
	{"university", model.CategoryEducation},
	{"college", model.CategoryEducation},
	{"tuition", model.CategoryEducation},
	{"bookstore", model.CategoryEducation},
	{"hotel", model.CategoryTravel},
	{"motel", model.CategoryTravel},
	{"airline", model.CategoryTravel},
	{"airways", model.CategoryTravel},
	{"airport", model.CategoryTravel},
	{"resort", model.CategoryTravel},
	{"gym", model.CategoryFitness},
	{"fitness", model.CategoryFitness},
	{"yoga", model.CategoryFitness},
	{"crossfit", model.CategoryFitness},
	{"salon", model.CategoryPersonalCare},
	{"barber", model.CategoryPersonalCare},
	{"spa", model.CategoryPersonalCare},
	{"nails", model.CategoryPersonalCare},
	{"hardware", model.CategoryHomeGarden},
	{"garden", model.CategoryHomeGarden},
	{"nursery", model.CategoryHomeGarden},
	{"furniture", model.CategoryHomeGarden},
	{"office", model.CategoryBusiness},
	{"printing", model.CategoryBusiness},
	{"shipping", model.CategoryBusiness},
	{"insurance", model.CategoryInsurance},
	{"florist", model.CategoryGiftsDonations},
	{"charity", model.CategoryGiftsDonations},
	{"donation", model.CategoryGiftsDonations},
	{"subscription", model.CategorySubscriptions},
	{"streaming", model.CategorySubscriptions},
}

// ruleEngine performs the deterministic keyword/merchant-table lookup.
// All state is built once at construction and read-only afterwards.
type ruleEngine struct {
	matcher       *ahocorasick.Matcher
	merchantNames []string
}

func newRuleEngine() *ruleEngine {
	patterns := make([]string, len(keywordRules))
	for i, r := range keywordRules {
		patterns[i] = r.keyword
	}

	names := make([]string, 0, len(merchantTable))
	for name := range merchantTable {
		names = append(names, name)
	}
	sort.Strings(names)

	return &ruleEngine{
		matcher:       ahocorasick.NewStringMatcher(patterns),
		merchantNames: names,
	}
}

// classify scores merchant and description against the rule tables. It is
// total: any input, including empty strings, yields a category.
func (e *ruleEngine) classify(merchantName, description string) (model.Category, float64) {
	if cat, ok := e.matchMerchantTable(merchantName); ok {
		return cat, merchantTableConfidence
	}

	haystack := strings.ToLower(merchantName + " " + description)

	votes := map[model.Category]int{}
	hits := map[model.Category]int{}
	for _, idx := range e.matcher.Match([]byte(haystack)) {
		rule := keywordRules[idx]
		if !containsWord(haystack, rule.keyword) {
			continue
		}
		votes[rule.category] += len(rule.keyword)
		hits[rule.category]++
	}

	// Ties break on category name so results stay deterministic.
	var winner model.Category
	best := 0
	for cat, weight := range votes {
		if weight > best || (weight == best && cat < winner) {
			winner, best = cat, weight
		}
	}
	if best == 0 {
		return model.CategoryOther, noMatchConfidence
	}

	conf := keywordBaseConfidence +
		keywordHitBonus*float64(hits[winner]) +
		keywordLengthBonus*float64(best)
	if conf > maxRuleConfidence {
		conf = maxRuleConfidence
	}
	return winner, conf
}

// matchMerchantTable fuzzy-matches each merchant-name token against the known
// merchant table, so "STARBUCKS STORE #123" still hits "starbucks".
func (e *ruleEngine) matchMerchantTable(merchantName string) (model.Category, bool) {
	for _, token := range strings.Fields(strings.ToLower(merchantName)) {
		token = strings.Trim(token, "#*.,-")
		if len(token) < 3 {
			continue
		}
		match := textutil.FuzzyMatch(token, e.merchantNames, merchantMatchThreshold)
		if match != "" {
			return merchantTable[match], true
		}
	}
	return "", false
}

// containsWord reports whether needle occurs in haystack bounded by
// non-letter characters. The aho-corasick pass matches substrings, so "gas"
// inside "vegas" must be filtered out here.
func containsWord(haystack, needle string) bool {
	for start := 0; ; {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(needle)
		leftOK := i == 0 || !isLetter(haystack[i-1])
		rightOK := end == len(haystack) || !isLetter(haystack[end])
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
