package importer

import (
	"strings"
	"time"
	"unicode"
)

// ColumnType classifies the content of one column.
type ColumnType string

const (
	ColumnDate        ColumnType = "date"
	ColumnAmount      ColumnType = "amount"
	ColumnDescription ColumnType = "description"
	ColumnBalance     ColumnType = "balance"
	ColumnUnknown     ColumnType = "unknown"
)

// ColumnAnalysis is the content-derived classification of one column.
// Scores holds the successful-parse fraction per candidate type so the
// mapping resolver can pick second-best columns for secondary roles.
type ColumnAnalysis struct {
	Index      int
	Type       ColumnType
	Confidence float64
	Scores     map[ColumnType]float64
}

const (
	classifySampleRows = 25
	classifyThreshold  = 0.6
)

// dateLayouts are the layouts tried when sniffing date columns. The
// configured dialect layout is always tried first during normalization;
// these only drive classification.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006/01/02",
	"02/01/2006",
	"2006.01.02",
	"20060102",
}

// typePriority is the fixed tie-break order.
var typePriority = []ColumnType{ColumnDate, ColumnAmount, ColumnDescription, ColumnBalance}

// Classify samples rows of each column and scores how likely the column is
// a date, amount, description or balance column. Columns where no type
// clears the threshold are unknown.
func Classify(table *ParsedTable) []ColumnAnalysis {
	cols := table.ColumnCount()
	analyses := make([]ColumnAnalysis, cols)

	for c := 0; c < cols; c++ {
		var sampled, dateHits, numHits, textHits int
		for r := 0; r < len(table.Rows) && sampled < classifySampleRows; r++ {
			if c >= len(table.Rows[r]) {
				continue
			}
			v := strings.TrimSpace(table.Rows[r][c])
			if v == "" {
				continue
			}
			sampled++
			switch {
			case looksLikeDate(v):
				dateHits++
			case looksLikeNumber(v):
				numHits++
			case hasLetter(v):
				textHits++
			}
		}

		a := ColumnAnalysis{Index: c, Type: ColumnUnknown, Scores: map[ColumnType]float64{}}
		if sampled > 0 {
			a.Scores[ColumnDate] = float64(dateHits) / float64(sampled)
			a.Scores[ColumnAmount] = float64(numHits) / float64(sampled)
			a.Scores[ColumnDescription] = float64(textHits) / float64(sampled)
			// Balance columns are numeric too; the slight discount keeps
			// amount ahead in the tie-break so balance is resolved from the
			// remaining numeric columns.
			a.Scores[ColumnBalance] = a.Scores[ColumnAmount] * 0.9

			for _, ct := range typePriority {
				if a.Scores[ct] >= classifyThreshold && a.Scores[ct] > a.Confidence {
					a.Type = ct
					a.Confidence = a.Scores[ct]
				}
			}
		}
		analyses[c] = a
	}
	return analyses
}

func looksLikeDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// looksLikeNumber accepts signed numerics under either decimal convention,
// including grouped thousands like "-1 234,56".
func looksLikeNumber(v string) bool {
	if _, err := ParseAmount(v, ','); err == nil {
		return true
	}
	_, err := ParseAmount(v, '.')
	return err == nil
}

func hasLetter(v string) bool {
	for _, r := range v {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
