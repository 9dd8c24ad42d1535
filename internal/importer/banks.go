package importer

import (
	"regexp"
	"strings"
)

// Cleanup rewrites a bank-specific raw description into its canonical form.
type Cleanup interface {
	Apply(desc string) string
	Bank() string
}

// CleanupRegistry holds named bank cleanups.
type CleanupRegistry struct {
	cleanups map[string]Cleanup
}

// NewCleanupRegistry creates an empty cleanup registry.
func NewCleanupRegistry() *CleanupRegistry {
	return &CleanupRegistry{cleanups: make(map[string]Cleanup)}
}

// Register adds a cleanup. Panics on duplicate bank id.
func (r *CleanupRegistry) Register(c Cleanup) {
	key := strings.ToLower(c.Bank())
	if _, ok := r.cleanups[key]; ok {
		panic("duplicate bank cleanup: " + key)
	}
	r.cleanups[key] = c
}

// Get returns the cleanup for a bank id, or nil.
func (r *CleanupRegistry) Get(bank string) Cleanup {
	return r.cleanups[strings.ToLower(bank)]
}

// DefaultCleanups returns a registry with all built-in bank cleanups.
func DefaultCleanups() *CleanupRegistry {
	r := NewCleanupRegistry()
	r.Register(&SEBCleanup{})
	r.Register(&SwedbankCleanup{})
	return r
}

// sebValueDateSuffix matches the value-date suffix SEB embeds at the end of
// card purchase descriptions, e.g. "NETFLIX COM /24-01-01".
var sebValueDateSuffix = regexp.MustCompile(`\s*/\d{2}-\d{2}-\d{2}$`)

// SEBCleanup strips SEB's trailing embedded value-date from descriptions.
type SEBCleanup struct{}

func (c *SEBCleanup) Bank() string { return "seb" }

func (c *SEBCleanup) Apply(desc string) string {
	return strings.TrimSpace(sebValueDateSuffix.ReplaceAllString(desc, ""))
}

// swedbankCardSuffix matches the masked card-number fragment Swedbank
// appends to card purchases, e.g. "ICA SUPERMARKET *5412".
var swedbankCardSuffix = regexp.MustCompile(`\s*\*+\d{2,4}$`)

// SwedbankCleanup strips Swedbank's trailing masked card fragment.
type SwedbankCleanup struct{}

func (c *SwedbankCleanup) Bank() string { return "swedbank" }

func (c *SwedbankCleanup) Apply(desc string) string {
	return strings.TrimSpace(swedbankCardSuffix.ReplaceAllString(desc, ""))
}
