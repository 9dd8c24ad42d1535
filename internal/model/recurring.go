package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the inferred period between occurrences of a recurring payment.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// DetectedRecurringGroup is one recurring-payment candidate. It is produced
// fresh on every detection run and is never persisted directly; the caller
// confirms a candidate to create a Subscription.
type DetectedRecurringGroup struct {
	Recipient      string
	TransactionIDs []string
	MinAmount      decimal.Decimal
	MaxAmount      decimal.Decimal
	AverageAmount  decimal.Decimal
	Frequency      Frequency
	BillingDay     int // day of month; weekday 0-6 for weekly groups
	Confidence     int // 0..100
	Occurrences    int
}

// SubscriptionKind distinguishes a cancellable subscription from a fixed
// recurring expense such as rent or insurance.
type SubscriptionKind string

const (
	KindSubscription SubscriptionKind = "subscription"
	KindFixedExpense SubscriptionKind = "fixed-expense"
)

// Subscription is a confirmed recurring group. Created only through explicit
// confirmation of a DetectedRecurringGroup, updated or removed only by
// explicit user action.
type Subscription struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Amount         decimal.Decimal  `json:"amount"`
	BillingDay     int              `json:"billing_day"`
	Frequency      Frequency        `json:"frequency"`
	Kind           SubscriptionKind `json:"kind"`
	Active         bool             `json:"active"`
	TransactionIDs []string         `json:"transaction_ids"`
	CreatedAt      time.Time        `json:"created_at"`
}
