package subscription

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kontovy/kontovy/internal/id"
	"github.com/kontovy/kontovy/internal/model"
	"github.com/kontovy/kontovy/internal/store"
)

// storeKey is the versioned key the subscription set is persisted under.
const storeKey = "kontovy.subscriptions.v1"

// Decision is the caller's verdict on a detected recurring group.
type Decision string

const (
	DecisionSubscription Decision = "subscription"
	DecisionFixedExpense Decision = "fixed-expense"
	DecisionSkip         Decision = "skip"
)

// Service converts confirmed recurring candidates into persisted
// Subscriptions. Detector output never reaches the store without an
// explicit decision.
type Service struct {
	kv store.KV
}

// NewService creates a Service over the given store.
func NewService(kv store.KV) *Service {
	return &Service{kv: kv}
}

// List returns all persisted subscriptions.
func (s *Service) List() ([]model.Subscription, error) {
	data, ok, err := s.kv.Get(storeKey)
	if err != nil {
		return nil, fmt.Errorf("loading subscriptions: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var subs []model.Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("decoding subscriptions: %w", err)
	}
	return subs, nil
}

// Confirm turns a candidate into a persisted Subscription according to the
// decision. A skip decision persists nothing and returns nil.
func (s *Service) Confirm(group model.DetectedRecurringGroup, decision Decision) (*model.Subscription, error) {
	switch decision {
	case DecisionSkip:
		return nil, nil
	case DecisionSubscription, DecisionFixedExpense:
	default:
		return nil, fmt.Errorf("unknown decision %q", decision)
	}

	kind := model.KindSubscription
	if decision == DecisionFixedExpense {
		kind = model.KindFixedExpense
	}

	sub := model.Subscription{
		ID:             id.NewSubscription(),
		Name:           group.Recipient,
		Amount:         group.AverageAmount,
		BillingDay:     group.BillingDay,
		Frequency:      group.Frequency,
		Kind:           kind,
		Active:         true,
		TransactionIDs: append([]string(nil), group.TransactionIDs...),
		CreatedAt:      time.Now().UTC(),
	}

	subs, err := s.List()
	if err != nil {
		return nil, err
	}
	subs = append(subs, sub)
	if err := s.save(subs); err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetActive pauses or resumes a subscription.
func (s *Service) SetActive(subID string, active bool) error {
	subs, err := s.List()
	if err != nil {
		return err
	}
	for i := range subs {
		if subs[i].ID == subID {
			subs[i].Active = active
			return s.save(subs)
		}
	}
	return fmt.Errorf("unknown subscription %q", subID)
}

// Remove deletes a subscription.
func (s *Service) Remove(subID string) error {
	subs, err := s.List()
	if err != nil {
		return err
	}
	for i := range subs {
		if subs[i].ID == subID {
			subs = append(subs[:i], subs[i+1:]...)
			return s.save(subs)
		}
	}
	return fmt.Errorf("unknown subscription %q", subID)
}

func (s *Service) save(subs []model.Subscription) error {
	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("encoding subscriptions: %w", err)
	}
	if err := s.kv.Set(storeKey, data); err != nil {
		return fmt.Errorf("saving subscriptions: %w", err)
	}
	return nil
}

// Tag marks the transactions belonging to a confirmed subscription. The
// caller applies this to its own transaction set after confirmation.
func Tag(txns []model.Transaction, sub model.Subscription) {
	member := make(map[string]bool, len(sub.TransactionIDs))
	for _, tid := range sub.TransactionIDs {
		member[tid] = true
	}

	tag := model.TagRecurring
	if sub.Kind == model.KindFixedExpense {
		tag = model.TagFixedExpense
	}
	for i := range txns {
		if member[txns[i].ID] {
			txns[i].AddTag(tag)
		}
	}
}
