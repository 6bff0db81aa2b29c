package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Outcome constants for recorded encounters.
const (
	OutcomeVictory = "victory"
	OutcomeDefeat  = "defeat"
)

// ValidOutcome reports whether outcome is a recognised terminal result.
func ValidOutcome(outcome string) bool {
	return outcome == OutcomeVictory || outcome == OutcomeDefeat
}

// ErrInvalidOutcome is returned when an unrecognised outcome string is supplied.
var ErrInvalidOutcome = errors.New("invalid outcome")

// ErrEncounterNotFound is returned when an encounter lookup yields no results.
var ErrEncounterNotFound = errors.New("encounter not found")

// Encounter is one finished combat's persisted summary.
type Encounter struct {
	ID              string
	Region          string
	Corruption      int
	Outcome         string
	Turns           int
	PlayerHP        int
	EnemiesDefeated int
	CardsPlayed     int
	Currency        int
	CreatedAt       time.Time
}

// EncounterRepository provides encounter-result persistence operations.
type EncounterRepository struct {
	db *pgxpool.Pool
}

// NewEncounterRepository creates an EncounterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewEncounterRepository(db *pgxpool.Pool) *EncounterRepository {
	return &EncounterRepository{db: db}
}

// Record inserts a finished encounter. A zero ID is assigned a fresh UUID.
//
// Precondition: enc.Outcome must be a valid outcome (use ValidOutcome to check).
// Postcondition: Returns the stored Encounter with ID and CreatedAt set.
func (r *EncounterRepository) Record(ctx context.Context, enc Encounter) (Encounter, error) {
	if !ValidOutcome(enc.Outcome) {
		return Encounter{}, ErrInvalidOutcome
	}
	if enc.ID == "" {
		enc.ID = uuid.New().String()
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO encounters (id, region, corruption, outcome, turns, player_hp, enemies_defeated, cards_played, currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		enc.ID, enc.Region, enc.Corruption, enc.Outcome, enc.Turns,
		enc.PlayerHP, enc.EnemiesDefeated, enc.CardsPlayed, enc.Currency,
	).Scan(&enc.CreatedAt)
	if err != nil {
		return Encounter{}, fmt.Errorf("inserting encounter: %w", err)
	}
	return enc, nil
}

// GetByID retrieves an encounter by its UUID.
//
// Precondition: id must be non-empty.
// Postcondition: Returns the Encounter or ErrEncounterNotFound.
func (r *EncounterRepository) GetByID(ctx context.Context, id string) (Encounter, error) {
	var enc Encounter
	err := r.db.QueryRow(ctx,
		`SELECT id, region, corruption, outcome, turns, player_hp, enemies_defeated, cards_played, currency, created_at
		 FROM encounters WHERE id = $1`,
		id,
	).Scan(&enc.ID, &enc.Region, &enc.Corruption, &enc.Outcome, &enc.Turns,
		&enc.PlayerHP, &enc.EnemiesDefeated, &enc.CardsPlayed, &enc.Currency, &enc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Encounter{}, ErrEncounterNotFound
		}
		return Encounter{}, fmt.Errorf("querying encounter: %w", err)
	}
	return enc, nil
}

// ListRecent returns up to limit encounters, newest first.
//
// Precondition: limit must be >= 1.
func (r *EncounterRepository) ListRecent(ctx context.Context, limit int) ([]Encounter, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, region, corruption, outcome, turns, player_hp, enemies_defeated, cards_played, currency, created_at
		 FROM encounters ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying encounters: %w", err)
	}
	defer rows.Close()

	var out []Encounter
	for rows.Next() {
		var enc Encounter
		if err := rows.Scan(&enc.ID, &enc.Region, &enc.Corruption, &enc.Outcome, &enc.Turns,
			&enc.PlayerHP, &enc.EnemiesDefeated, &enc.CardsPlayed, &enc.Currency, &enc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning encounter: %w", err)
		}
		out = append(out, enc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating encounters: %w", err)
	}
	return out, nil
}

// WinRate returns the fraction of recorded encounters won in the given region,
// or 0 with no error when nothing has been recorded there.
func (r *EncounterRepository) WinRate(ctx context.Context, region string) (float64, error) {
	var total, won int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE outcome = $2)
		 FROM encounters WHERE region = $1`,
		region, OutcomeVictory,
	).Scan(&total, &won)
	if err != nil {
		return 0, fmt.Errorf("querying win rate: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(won) / float64(total), nil
}
