package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/deckbound/internal/storage/postgres"
	"github.com/cory-johannsen/deckbound/internal/testutil"
)

func setupEncounterRepo(t *testing.T) *postgres.EncounterRepository {
	t.Helper()
	return postgres.NewEncounterRepository(testutil.NewPool(t))
}

func wonEncounter() postgres.Encounter {
	return postgres.Encounter{
		Region:          "ashlands",
		Corruption:      2,
		Outcome:         postgres.OutcomeVictory,
		Turns:           7,
		PlayerHP:        41,
		EnemiesDefeated: 2,
		CardsPlayed:     19,
		Currency:        35,
	}
}

func TestEncounterRepository_Record(t *testing.T) {
	repo := setupEncounterRepo(t)
	ctx := context.Background()

	created, err := repo.Record(ctx, wonEncounter())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ashlands", created.Region)
	assert.Equal(t, postgres.OutcomeVictory, created.Outcome)
	assert.Equal(t, 7, created.Turns)
	assert.Equal(t, 41, created.PlayerHP)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestEncounterRepository_RecordRejectsBadOutcome(t *testing.T) {
	repo := setupEncounterRepo(t)
	ctx := context.Background()

	enc := wonEncounter()
	enc.Outcome = "stalemate"
	_, err := repo.Record(ctx, enc)
	assert.ErrorIs(t, err, postgres.ErrInvalidOutcome)
}

func TestEncounterRepository_GetByID(t *testing.T) {
	repo := setupEncounterRepo(t)
	ctx := context.Background()

	created, err := repo.Record(ctx, wonEncounter())
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Currency, got.Currency)
	assert.Equal(t, created.EnemiesDefeated, got.EnemiesDefeated)
}

func TestEncounterRepository_GetByIDNotFound(t *testing.T) {
	repo := setupEncounterRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "11111111-1111-1111-1111-111111111111")
	assert.ErrorIs(t, err, postgres.ErrEncounterNotFound)
}

func TestEncounterRepository_ListRecent(t *testing.T) {
	repo := setupEncounterRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		enc := wonEncounter()
		enc.Turns = 5 + i
		_, err := repo.Record(ctx, enc)
		require.NoError(t, err)
	}

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestEncounterRepository_WinRate(t *testing.T) {
	repo := setupEncounterRepo(t)
	ctx := context.Background()

	rate, err := repo.WinRate(ctx, "ashlands")
	require.NoError(t, err)
	assert.Zero(t, rate)

	_, err = repo.Record(ctx, wonEncounter())
	require.NoError(t, err)

	lost := wonEncounter()
	lost.Outcome = postgres.OutcomeDefeat
	lost.PlayerHP = 0
	_, err = repo.Record(ctx, lost)
	require.NoError(t, err)

	rate, err = repo.WinRate(ctx, "ashlands")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rate, 1e-9)
}

func TestValidOutcome(t *testing.T) {
	assert.True(t, postgres.ValidOutcome(postgres.OutcomeVictory))
	assert.True(t, postgres.ValidOutcome(postgres.OutcomeDefeat))
	assert.False(t, postgres.ValidOutcome(""))
	assert.False(t, postgres.ValidOutcome("draw"))
}
