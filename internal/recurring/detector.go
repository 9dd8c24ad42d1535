package recurring

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kontovy/kontovy/internal/model"
)

// Config tunes the detector thresholds.
type Config struct {
	MinOccurrences int // candidate groups need at least this many transactions
	MinConfidence  int // candidates scoring below this are discarded
	PrefixMergeLen int // shared-prefix length that merges near-duplicate names
}

// DefaultConfig returns the detector defaults.
func DefaultConfig() Config {
	return Config{
		MinOccurrences: 2,
		MinConfidence:  50,
		PrefixMergeLen: 6,
	}
}

// Detector infers recurring payments from a categorized transaction set. It
// never mutates transactions; it only returns candidates for confirmation.
type Detector struct {
	cfg Config
}

// New creates a Detector.
func New(cfg Config) *Detector {
	if cfg.MinOccurrences < 2 {
		cfg.MinOccurrences = 2
	}
	return &Detector{cfg: cfg}
}

// group accumulates the transactions bucketed under one normalized name.
type group struct {
	name string
	txns []model.Transaction
}

// frequencyBand maps a typical interval in days onto a discrete frequency.
type frequencyBand struct {
	freq     model.Frequency
	min, max float64
}

var frequencyBands = []frequencyBand{
	{model.FrequencyWeekly, 5, 9},
	{model.FrequencyMonthly, 24, 35},
	{model.FrequencyQuarterly, 80, 100},
	{model.FrequencyYearly, 330, 400},
}

// Detect groups expenses by normalized recipient and returns recurring
// candidates ordered by confidence. A result of zero candidates is a valid,
// non-error outcome.
func (d *Detector) Detect(txns []model.Transaction) []model.DetectedRecurringGroup {
	groups := d.groupByRecipient(txns)

	var candidates []model.DetectedRecurringGroup
	for _, g := range groups {
		if len(g.txns) < d.cfg.MinOccurrences {
			continue
		}
		if cand, ok := d.analyze(g); ok {
			candidates = append(candidates, cand)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].Recipient < candidates[j].Recipient
	})
	return candidates
}

// groupByRecipient buckets expenses by exact normalized name, then merges
// buckets whose names are near-duplicates.
func (d *Detector) groupByRecipient(txns []model.Transaction) []group {
	buckets := make(map[string][]model.Transaction)
	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		name := NormalizeRecipient(t.Description)
		if name == "" {
			continue
		}
		buckets[name] = append(buckets[name], t)
	}

	// Deterministic merge order: shortest names first so variants fold into
	// the shortest shared stem, ties sorted lexicographically.
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})

	var groups []group
	for _, name := range names {
		merged := false
		for gi := range groups {
			if d.nearDuplicate(groups[gi].name, name) {
				groups[gi].txns = append(groups[gi].txns, buckets[name]...)
				merged = true
				break
			}
		}
		if !merged {
			groups = append(groups, group{name: name, txns: buckets[name]})
		}
	}
	return groups
}

// nearDuplicate reports whether two normalized names refer to the same
// recipient: one contains the other, or they share a long common prefix.
func (d *Detector) nearDuplicate(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	n := d.cfg.PrefixMergeLen
	if len(a) < n || len(b) < n {
		return false
	}
	return a[:n] == b[:n]
}

// analyze infers cadence, billing day and confidence for one group.
func (d *Detector) analyze(g group) (model.DetectedRecurringGroup, bool) {
	txns := make([]model.Transaction, len(g.txns))
	copy(txns, g.txns)
	sort.Slice(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })

	// Typical interval between consecutive occurrences, in days.
	intervals := make([]float64, 0, len(txns)-1)
	for i := 1; i < len(txns); i++ {
		days := txns[i].Date.Sub(txns[i-1].Date).Hours() / 24
		intervals = append(intervals, days)
	}
	typical := median(intervals)

	freq, ok := mapFrequency(typical)
	if !ok {
		return model.DetectedRecurringGroup{}, false
	}

	// Expected billing day: mode of the day-of-period.
	days := make([]int, len(txns))
	for i, t := range txns {
		if freq == model.FrequencyWeekly {
			days[i] = int(t.Date.Weekday())
		} else {
			days[i] = t.Date.Day()
		}
	}
	billingDay, modeCount := mode(days)

	// Amount statistics over absolute values.
	amounts := make([]decimal.Decimal, len(txns))
	ids := make([]string, len(txns))
	sum := decimal.Zero
	minAmt, maxAmt := txns[0].Amount.Abs(), txns[0].Amount.Abs()
	for i, t := range txns {
		a := t.Amount.Abs()
		amounts[i] = a
		ids[i] = t.ID
		sum = sum.Add(a)
		if a.LessThan(minAmt) {
			minAmt = a
		}
		if a.GreaterThan(maxAmt) {
			maxAmt = a
		}
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(txns))))

	confidence := d.confidence(len(txns), modeCount, amounts, avg)
	if confidence < d.cfg.MinConfidence {
		return model.DetectedRecurringGroup{}, false
	}

	return model.DetectedRecurringGroup{
		Recipient:      g.name,
		TransactionIDs: ids,
		MinAmount:      minAmt,
		MaxAmount:      maxAmt,
		AverageAmount:  avg.Round(2),
		Frequency:      freq,
		BillingDay:     billingDay,
		Confidence:     confidence,
		Occurrences:    len(txns),
	}, true
}

// confidence combines occurrence count (up to 40 points), billing-day
// consistency (up to 30) and amount tightness (up to 30) into a score in
// [0,100].
func (d *Detector) confidence(occurrences, modeCount int, amounts []decimal.Decimal, avg decimal.Decimal) int {
	occPoints := 40 * math.Min(float64(occurrences), 6) / 6

	dayPoints := 30 * float64(modeCount) / float64(occurrences)

	relSD := relativeStdDev(amounts, avg)
	amountPoints := 30 * (1 - math.Min(relSD/0.2, 1))

	score := int(math.Round(occPoints + dayPoints + amountPoints))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func mapFrequency(typicalDays float64) (model.Frequency, bool) {
	for _, band := range frequencyBands {
		if typicalDays >= band.min && typicalDays <= band.max {
			return band.freq, true
		}
	}
	return "", false
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func mode(values []int) (value, count int) {
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	for v, c := range counts {
		if c > count || (c == count && v < value) {
			value, count = v, c
		}
	}
	return value, count
}

// relativeStdDev returns the standard deviation of amounts divided by the
// mean. Zero mean yields zero.
func relativeStdDev(amounts []decimal.Decimal, avg decimal.Decimal) float64 {
	mean, _ := avg.Float64()
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, a := range amounts {
		f, _ := a.Float64()
		diff := f - mean
		variance += diff * diff
	}
	variance /= float64(len(amounts))
	return math.Sqrt(variance) / mean
}
