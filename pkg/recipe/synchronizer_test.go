package recipe_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/Wickypolineni/track-pantry/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncAndReturn_FirstFetchPersistsAll(t *testing.T) {
	repo := newScriptedRepository()
	sync := recipe.NewRecipeSynchronizer(repo)

	fetched := recipesWithIDs(1, 2, 3)
	got, report := sync.SyncAndReturn(context.Background(), fetched)

	assert.Equal(t, fetched, got)
	assert.Equal(t, []int64{1, 2, 3}, storedIDs(t, repo))
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 3, report.Persisted)
	assert.Zero(t, report.AlreadyPresent)
	assert.Zero(t, report.Failed)
	assert.False(t, report.ExistingIDsUnknown)
	assert.NotEmpty(t, report.RunID)
}

func TestSyncAndReturn_SecondFetchWritesOnlyNew(t *testing.T) {
	repo := newScriptedRepository()
	sync := recipe.NewRecipeSynchronizer(repo)
	ctx := context.Background()

	sync.SyncAndReturn(ctx, recipesWithIDs(1, 2, 3))
	got, report := sync.SyncAndReturn(ctx, recipesWithIDs(2, 3, 4))

	assert.Equal(t, []int64{2, 3, 4}, recipeIDs(got))
	assert.Equal(t, []int64{1, 2, 3, 4}, storedIDs(t, repo))
	assert.Equal(t, 1, report.Persisted)
	assert.Equal(t, 2, report.AlreadyPresent)
	assert.Equal(t, []domain.WriteOutcome{
		{ID: 2, Status: domain.OutcomePresent},
		{ID: 3, Status: domain.OutcomePresent},
		{ID: 4, Status: domain.OutcomePersisted},
	}, report.Outcomes)

	for _, id := range []int64{2, 3} {
		assert.Equal(t, 1, repo.insertCount(id), "recipe %d rewritten", id)
	}
}

func TestSyncAndReturn_Idempotent(t *testing.T) {
	once := newScriptedRepository()
	twice := newScriptedRepository()
	ctx := context.Background()
	fetched := recipesWithIDs(10, 20, 30)

	recipe.NewRecipeSynchronizer(once).SyncAndReturn(ctx, fetched)

	s := recipe.NewRecipeSynchronizer(twice)
	s.SyncAndReturn(ctx, fetched)
	_, report := s.SyncAndReturn(ctx, fetched)

	onceAll, err := once.ListAll(ctx)
	require.NoError(t, err)
	twiceAll, err := twice.ListAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, onceAll, twiceAll)
	assert.Zero(t, report.Persisted)
	assert.Equal(t, 3, report.AlreadyPresent)
}

func TestSyncAndReturn_DuplicateIDsInOneBatch(t *testing.T) {
	repo := newScriptedRepository()
	sync := recipe.NewRecipeSynchronizer(repo)

	fetched := append(recipesWithIDs(5), recipesWithIDs(5, 6)...)
	got, report := sync.SyncAndReturn(context.Background(), fetched)

	assert.Equal(t, fetched, got)
	assert.Equal(t, []int64{5, 6}, storedIDs(t, repo))
	assert.Equal(t, 1, repo.insertCount(5))
	assert.Equal(t, 2, report.Persisted)
	assert.Equal(t, 1, report.AlreadyPresent)
}

func TestSyncAndReturn_RepeatOfFailedIDIsReportedFailed(t *testing.T) {
	repo := newScriptedRepository()
	repo.insertErr[5] = fmt.Errorf("%w: connection reset", domain.ErrStoreWrite)
	sync := recipe.NewRecipeSynchronizer(repo)

	fetched := append(recipesWithIDs(5, 6), recipesWithIDs(5)...)
	got, report := sync.SyncAndReturn(context.Background(), fetched)

	assert.Equal(t, fetched, got)
	assert.Equal(t, []int64{6}, storedIDs(t, repo))
	assert.Equal(t, 1, repo.insertCount(5))
	assert.Equal(t, 1, report.Persisted)
	assert.Zero(t, report.AlreadyPresent)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, domain.OutcomeFailed, report.Outcomes[2].Status)
	assert.Contains(t, report.Outcomes[2].Error, "connection reset")
}

func TestSyncAndReturn_WriteFailureDoesNotStopBatch(t *testing.T) {
	repo := newScriptedRepository()
	repo.insertErr[2] = fmt.Errorf("%w: connection reset", domain.ErrStoreWrite)
	sync := recipe.NewRecipeSynchronizer(repo)

	fetched := recipesWithIDs(1, 2, 3)
	got, report := sync.SyncAndReturn(context.Background(), fetched)

	assert.Equal(t, fetched, got)
	assert.Equal(t, []int64{1, 3}, storedIDs(t, repo))
	assert.Equal(t, 2, report.Persisted)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, domain.OutcomeFailed, report.Outcomes[1].Status)
	assert.Contains(t, report.Outcomes[1].Error, "connection reset")

	// not retried by itself, but picked up by the next fetch
	delete(repo.insertErr, 2)
	_, report = sync.SyncAndReturn(context.Background(), fetched)
	assert.Equal(t, 1, report.Persisted)
	assert.Equal(t, []int64{1, 2, 3}, storedIDs(t, repo))
}

func TestSyncAndReturn_UnknownIDsFallBackToStoreUniqueness(t *testing.T) {
	repo := newScriptedRepository(recipesWithIDs(1)...)
	repo.listIDsErr = fmt.Errorf("%w: timeout", domain.ErrStoreRead)
	sync := recipe.NewRecipeSynchronizer(repo)

	fetched := recipesWithIDs(1, 2)
	got, report := sync.SyncAndReturn(context.Background(), fetched)

	assert.Equal(t, fetched, got)
	assert.True(t, report.ExistingIDsUnknown)
	// id 1 is attempted because it was not known, and the store refuses it
	assert.Equal(t, 1, repo.insertCount(1))
	assert.Equal(t, 1, report.AlreadyPresent)
	assert.Equal(t, 1, report.Persisted)
	assert.Equal(t, []int64{1, 2}, storedIDs(t, repo))
}

func TestSyncAndReturn_EmptyFetch(t *testing.T) {
	repo := newScriptedRepository(recipesWithIDs(1)...)
	got, report := recipe.NewRecipeSynchronizer(repo).SyncAndReturn(context.Background(), []domain.Recipe{})

	assert.Empty(t, got)
	assert.Zero(t, report.Fetched)
	assert.Empty(t, report.Outcomes)
	assert.Equal(t, []int64{1}, storedIDs(t, repo))
}

func TestLoadPersisted(t *testing.T) {
	ctx := context.Background()

	t.Run("cold start", func(t *testing.T) {
		got, err := recipe.NewRecipeSynchronizer(newScriptedRepository()).LoadPersisted(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("pre-seeded", func(t *testing.T) {
		seed := recipesWithIDs(7)
		got, err := recipe.NewRecipeSynchronizer(newScriptedRepository(seed...)).LoadPersisted(ctx)
		require.NoError(t, err)
		assert.Equal(t, seed, got)
	})

	t.Run("after N distinct ids", func(t *testing.T) {
		repo := newScriptedRepository()
		s := recipe.NewRecipeSynchronizer(repo)
		s.SyncAndReturn(ctx, recipesWithIDs(3, 1))
		s.SyncAndReturn(ctx, recipesWithIDs(1, 2))

		got, err := s.LoadPersisted(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, recipesWithIDs(1, 2, 3), got)
	})

	t.Run("read error", func(t *testing.T) {
		repo := newScriptedRepository()
		repo.listAllErr = fmt.Errorf("%w: boom", domain.ErrStoreRead)
		_, err := recipe.NewRecipeSynchronizer(repo).LoadPersisted(ctx)
		assert.True(t, errors.Is(err, domain.ErrStoreRead))
	})
}
