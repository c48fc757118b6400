package service

import (
	"context"
	"strings"
	"time"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/repository"
)

// InterestService manages the onboarding interest list. Setting interests
// replaces the whole list and marks onboarding complete.
type InterestService struct {
	interests repository.InterestRepo
	users     repository.UserRepo
	observer  UseCaseObserver
}

func NewInterestService(interests repository.InterestRepo, users repository.UserRepo, observer UseCaseObserver) *InterestService {
	return &InterestService{interests: interests, users: users, observer: observerOrNoop(observer)}
}

func (s *InterestService) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.interests.List(ctx, userID)
	if err != nil {
		return nil, contract.NewError(contract.ErrInternal, "could not list interests")
	}
	labels := make([]string, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, r.Label)
	}
	return labels, nil
}

// Replace swaps the interest list. Labels are trimmed, blanks dropped, and
// duplicates removed case-insensitively keeping the first occurrence's casing.
func (s *InterestService) Replace(ctx context.Context, userID string, in contract.InterestsInput) ([]string, error) {
	start := time.Now()
	var err error
	defer func() {
		observe(ctx, s.observer, "interests_replace", start, err, map[string]any{"count": len(in.Labels)})
	}()

	labels := DedupeLabels(in.Labels)
	if repErr := s.interests.Replace(ctx, userID, labels); repErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not save interests")
		return nil, err
	}
	if markErr := s.users.MarkOnboardingComplete(ctx, userID); markErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not save interests")
		return nil, err
	}
	return labels, nil
}

// DedupeLabels normalizes an interest label list: trim, drop blanks, and
// dedupe case-insensitively while keeping the first occurrence's casing.
func DedupeLabels(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, label)
	}
	return out
}
