package model

// MatchKind selects how a rule pattern is compared to a description.
type MatchKind string

const (
	MatchExact      MatchKind = "exact"
	MatchStartsWith MatchKind = "starts_with"
	MatchContains   MatchKind = "contains"
	MatchRegex      MatchKind = "regex"
)

// CategoryRule maps descriptions to a category. Built-in rules carry
// content-hash ids; user rules carry ids minted once at creation so they
// stay editable across sessions.
type CategoryRule struct {
	ID            string
	Pattern       string
	Match         MatchKind
	CategoryID    string
	SubcategoryID string
	Priority      int
	UserDefined   bool
}

// Category is one entry in the external category registry. A subcategory
// is a Category whose ParentID names its parent category.
type Category struct {
	ID       string
	Name     string
	Icon     string
	Color    string
	ParentID string // empty for top-level categories
}
