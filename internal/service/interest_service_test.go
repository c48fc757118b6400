package service_test

import (
	"context"
	"testing"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/service"
	"github.com/amreid/nextup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeLabels(t *testing.T) {
	got := service.DedupeLabels([]string{" Woodworking ", "woodworking", "", "Writing", "WRITING", "running"})
	assert.Equal(t, []string{"Woodworking", "Writing", "running"}, got,
		"first occurrence's casing wins")
}

func TestInterestService_ReplaceAndList(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewInterestService(r.interests, r.users, nil)
	ctx := context.Background()

	saved, err := svc.Replace(ctx, userID, contract.InterestsInput{
		Labels: []string{"Cooking", "cooking", "Hiking"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cooking", "Hiking"}, saved)

	labels, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cooking", "Hiking"}, labels)

	done, err := r.users.OnboardingCompleted(ctx, userID)
	require.NoError(t, err)
	assert.True(t, done, "setting interests completes onboarding")
}

func TestInterestService_ReplaceOverwrites(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewInterestService(r.interests, r.users, nil)
	ctx := context.Background()

	_, err := svc.Replace(ctx, userID, contract.InterestsInput{Labels: []string{"Old"}})
	require.NoError(t, err)
	_, err = svc.Replace(ctx, userID, contract.InterestsInput{Labels: []string{"New"}})
	require.NoError(t, err)

	labels, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"New"}, labels)
}
