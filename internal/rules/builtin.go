package rules

import (
	"github.com/kontovy/kontovy/internal/id"
	"github.com/kontovy/kontovy/internal/model"
)

// builtinDef is the compact form the built-in table is written in.
type builtinDef struct {
	pattern  string
	match    model.MatchKind
	category string
	sub      string
	priority int
}

// builtinDefs keep a fixed relative order; ids are minted from content so
// rule identity survives reordering and serialization.
var builtinDefs = []builtinDef{
	// Streaming and media.
	{"NETFLIX", model.MatchContains, "entertainment", "streaming", 80},
	{"SPOTIFY", model.MatchContains, "entertainment", "streaming", 80},
	{"HBO", model.MatchContains, "entertainment", "streaming", 80},
	{"DISNEY", model.MatchContains, "entertainment", "streaming", 80},
	{"VIAPLAY", model.MatchContains, "entertainment", "streaming", 80},
	{"STORYTEL", model.MatchContains, "entertainment", "streaming", 80},

	// Groceries.
	{"ICA", model.MatchStartsWith, "groceries", "", 70},
	{"COOP", model.MatchStartsWith, "groceries", "", 70},
	{"HEMKÖP", model.MatchStartsWith, "groceries", "", 70},
	{"WILLYS", model.MatchStartsWith, "groceries", "", 70},
	{"LIDL", model.MatchStartsWith, "groceries", "", 70},
	{"CITY GROSS", model.MatchStartsWith, "groceries", "", 70},

	// Transport.
	{"SL ", model.MatchStartsWith, "transport", "public-transit", 75},
	{"SL", model.MatchExact, "transport", "public-transit", 75},
	{"SJ ", model.MatchStartsWith, "transport", "rail", 75},
	{"VÄSTTRAFIK", model.MatchContains, "transport", "public-transit", 75},
	{"CIRCLE K", model.MatchContains, "transport", "fuel", 70},
	{"OKQ8", model.MatchContains, "transport", "fuel", 70},
	{"PREEM", model.MatchContains, "transport", "fuel", 70},

	// Utilities and telecom.
	{"VATTENFALL", model.MatchContains, "utilities", "electricity", 75},
	{"ELLEVIO", model.MatchContains, "utilities", "electricity", 75},
	{"TELIA", model.MatchContains, "utilities", "telecom", 75},
	{"TELE2", model.MatchContains, "utilities", "telecom", 75},
	{"COMVIQ", model.MatchContains, "utilities", "telecom", 75},
	{"BAHNHOF", model.MatchContains, "utilities", "internet", 75},

	// Insurance.
	{"FOLKSAM", model.MatchContains, "insurance", "", 75},
	{"TRYGG-HANSA", model.MatchContains, "insurance", "", 75},
	{"LÄNSFÖRSÄKRINGAR", model.MatchContains, "insurance", "", 75},

	// Restaurants and takeaway.
	{"MCDONALDS", model.MatchContains, "restaurants", "fast-food", 65},
	{"MAX BURGERS", model.MatchContains, "restaurants", "fast-food", 65},
	{"FOODORA", model.MatchContains, "restaurants", "delivery", 65},
	{"WOLT", model.MatchContains, "restaurants", "delivery", 65},
	{"ESPRESSO HOUSE", model.MatchContains, "restaurants", "cafe", 65},

	// Health.
	{"APOTEK", model.MatchContains, "health", "pharmacy", 70},
	{"KRONANS", model.MatchContains, "health", "pharmacy", 70},
	{"FOLKTANDVÅRDEN", model.MatchContains, "health", "dental", 70},

	// Shopping.
	{"H&M", model.MatchContains, "shopping", "clothing", 60},
	{"ZALANDO", model.MatchContains, "shopping", "clothing", 60},
	{"ÅHLÉNS", model.MatchContains, "shopping", "", 60},
	{"CLAS OHLSON", model.MatchContains, "shopping", "", 60},
	{"AMAZON", model.MatchContains, "shopping", "online", 60},

	// Housing.
	{"HYRA", model.MatchContains, "housing", "rent", 85},
	{"BRF", model.MatchStartsWith, "housing", "fees", 85},

	// Income.
	{"LÖN", model.MatchStartsWith, "income", "salary", 90},
	{"SALARY", model.MatchContains, "income", "salary", 90},
	{"SKATTEVERKET", model.MatchContains, "income", "tax-refund", 85},

	// Transfers.
	{"SWISH", model.MatchStartsWith, "transfers", "", 50},
	{"ÖVERFÖRING", model.MatchContains, "transfers", "", 50},
}

// Builtin returns the built-in rule set in its fixed order.
func Builtin() []model.CategoryRule {
	rules := make([]model.CategoryRule, len(builtinDefs))
	for i, d := range builtinDefs {
		rules[i] = model.CategoryRule{
			ID:            id.Rule(d.pattern, string(d.match), d.category, d.sub),
			Pattern:       d.pattern,
			Match:         d.match,
			CategoryID:    d.category,
			SubcategoryID: d.sub,
			Priority:      d.priority,
		}
	}
	return rules
}
