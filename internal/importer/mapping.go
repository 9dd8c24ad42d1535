package importer

import "strings"

// ColumnMapping resolves semantic roles to column indices. -1 means
// unresolved. Date, Description and Amount are required before
// normalization can proceed.
type ColumnMapping struct {
	Date        int
	ValueDate   int
	Description int
	Amount      int
	Balance     int
	Reference   int
}

// EmptyMapping returns a mapping with every role unresolved.
func EmptyMapping() ColumnMapping {
	return ColumnMapping{Date: -1, ValueDate: -1, Description: -1, Amount: -1, Balance: -1, Reference: -1}
}

// Complete reports whether the required roles are resolved.
func (m ColumnMapping) Complete() bool {
	return m.Date >= 0 && m.Description >= 0 && m.Amount >= 0
}

// MissingRoles names the unresolved required roles.
func (m ColumnMapping) MissingRoles() []string {
	var missing []string
	if m.Date < 0 {
		missing = append(missing, "date")
	}
	if m.Description < 0 {
		missing = append(missing, "description")
	}
	if m.Amount < 0 {
		missing = append(missing, "amount")
	}
	return missing
}

// role identifies a semantic column role during resolution.
type role int

const (
	roleDate role = iota
	roleValueDate
	roleDescription
	roleAmount
	roleBalance
	roleReference
)

// headerNames maps each role to known localized header names, matched
// case-insensitively after trimming.
var headerNames = map[role][]string{
	roleDate:        {"bokföringsdatum", "transaktionsdatum", "datum", "date", "booking date", "transaction date"},
	roleValueDate:   {"valutadatum", "value date", "valuta"},
	roleDescription: {"text", "beskrivning", "rubrik", "description", "narrative", "transaktion"},
	roleAmount:      {"belopp", "summa", "amount", "value"},
	roleBalance:     {"saldo", "bokfört saldo", "balance"},
	roleReference:   {"verifikationsnummer", "referens", "reference", "ref"},
}

// classifierType maps a role to the column type whose score backs it.
var classifierType = map[role]ColumnType{
	roleDate:        ColumnDate,
	roleValueDate:   ColumnDate,
	roleDescription: ColumnDescription,
	roleAmount:      ColumnAmount,
	roleBalance:     ColumnBalance,
}

// resolveOrder fixes which role claims a contested column first.
var resolveOrder = []role{roleDate, roleDescription, roleAmount, roleBalance, roleValueDate}

// ResolveMapping combines localized header matching with classifier scores
// into a best-guess mapping. The result is a suggestion; the caller may
// override it before normalization.
func ResolveMapping(analyses []ColumnAnalysis, headers []string) ColumnMapping {
	m := EmptyMapping()
	claimed := make(map[int]bool)

	// Pass 1: header names.
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		for r, candidates := range headerNames {
			if m.get(r) >= 0 || claimed[i] {
				continue
			}
			for _, cand := range candidates {
				if name == cand {
					m.set(r, i)
					claimed[i] = true
					break
				}
			}
		}
	}

	// Pass 2: classifier scores for still-unresolved roles, excluding
	// columns already claimed by another role.
	for _, r := range resolveOrder {
		if m.get(r) >= 0 {
			continue
		}
		ct := classifierType[r]
		best, bestScore := -1, 0.0
		for _, a := range analyses {
			if claimed[a.Index] {
				continue
			}
			if s := a.Scores[ct]; s >= classifyThreshold && s > bestScore {
				best, bestScore = a.Index, s
			}
		}
		if best >= 0 {
			m.set(r, best)
			claimed[best] = true
		}
	}

	return m
}

func (m *ColumnMapping) get(r role) int {
	switch r {
	case roleDate:
		return m.Date
	case roleValueDate:
		return m.ValueDate
	case roleDescription:
		return m.Description
	case roleAmount:
		return m.Amount
	case roleBalance:
		return m.Balance
	default:
		return m.Reference
	}
}

func (m *ColumnMapping) set(r role, idx int) {
	switch r {
	case roleDate:
		m.Date = idx
	case roleValueDate:
		m.ValueDate = idx
	case roleDescription:
		m.Description = idx
	case roleAmount:
		m.Amount = idx
	case roleBalance:
		m.Balance = idx
	default:
		m.Reference = idx
	}
}
