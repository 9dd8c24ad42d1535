package categories

import "github.com/kontovy/kontovy/internal/model"

// DefaultRegistry returns the built-in category registry.
func DefaultRegistry() []model.Category {
	return []model.Category{
		{ID: "groceries", Name: "Groceries", Icon: "cart", Color: "#4caf50"},
		{ID: "restaurants", Name: "Restaurants", Icon: "utensils", Color: "#ff9800"},
		{ID: "fast-food", Name: "Fast food", ParentID: "restaurants"},
		{ID: "delivery", Name: "Delivery", ParentID: "restaurants"},
		{ID: "cafe", Name: "Café", ParentID: "restaurants"},
		{ID: "entertainment", Name: "Entertainment", Icon: "film", Color: "#9c27b0"},
		{ID: "streaming", Name: "Streaming", ParentID: "entertainment"},
		{ID: "transport", Name: "Transport", Icon: "bus", Color: "#2196f3"},
		{ID: "public-transit", Name: "Public transit", ParentID: "transport"},
		{ID: "rail", Name: "Rail", ParentID: "transport"},
		{ID: "fuel", Name: "Fuel", ParentID: "transport"},
		{ID: "utilities", Name: "Utilities", Icon: "bolt", Color: "#ffc107"},
		{ID: "electricity", Name: "Electricity", ParentID: "utilities"},
		{ID: "telecom", Name: "Telecom", ParentID: "utilities"},
		{ID: "internet", Name: "Internet", ParentID: "utilities"},
		{ID: "insurance", Name: "Insurance", Icon: "shield", Color: "#607d8b"},
		{ID: "health", Name: "Health", Icon: "heart", Color: "#f44336"},
		{ID: "pharmacy", Name: "Pharmacy", ParentID: "health"},
		{ID: "dental", Name: "Dental", ParentID: "health"},
		{ID: "shopping", Name: "Shopping", Icon: "bag", Color: "#e91e63"},
		{ID: "clothing", Name: "Clothing", ParentID: "shopping"},
		{ID: "online", Name: "Online", ParentID: "shopping"},
		{ID: "housing", Name: "Housing", Icon: "home", Color: "#795548"},
		{ID: "rent", Name: "Rent", ParentID: "housing"},
		{ID: "fees", Name: "Fees", ParentID: "housing"},
		{ID: "income", Name: "Income", Icon: "coins", Color: "#8bc34a"},
		{ID: "salary", Name: "Salary", ParentID: "income"},
		{ID: "tax-refund", Name: "Tax refund", ParentID: "income"},
		{ID: "transfers", Name: "Transfers", Icon: "swap", Color: "#9e9e9e"},
	}
}
