package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/shared"
)

// PartyRepository implements [models.Repository] for [models.Party] persistence.
//
// Member and song id lists live in the party_members and party_songs join tables
// and are rewritten as a whole, in one transaction with the party row, on every write.
type PartyRepository struct {
	db *sql.DB
}

// NewPartyRepository creates a new [PartyRepository] with the given database connection
func NewPartyRepository(db *sql.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

const partyColumns = `id, sequence, name, date, location_id, points, created_at, updated_at, deleted_at`

// Create inserts a new party and its member and song lists
func (r *PartyRepository) Create(ctx context.Context, party *models.Party) error {
	if err := party.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(ctx, r.db, "parties")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	party.ID = shared.GenerateID()
	party.Sequence = sequence
	party.Touch(time.Now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO parties (id, sequence, name, date, location_id, points, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		party.ID,
		sequence,
		party.Name,
		party.Date,
		nullString(party.LocationID),
		party.Points,
		party.CreatedAt,
		party.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert party: %w", err)
	}

	if err := writeLists(ctx, tx, party); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit party: %w", err)
	}

	return nil
}

// Get retrieves a party by ID with its member and song lists in order
func (r *PartyRepository) Get(ctx context.Context, id string) (*models.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = ? AND deleted_at IS NULL`

	party, err := scanParty(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPartyNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadLists(ctx, party); err != nil {
		return nil, err
	}

	return party, nil
}

// Update writes the party row and replaces its member and song lists
func (r *PartyRepository) Update(ctx context.Context, party *models.Party) error {
	if err := party.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	party.Touch(time.Now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE parties
		SET name = ?, date = ?, location_id = ?, points = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := tx.ExecContext(ctx, query,
		party.Name,
		party.Date,
		nullString(party.LocationID),
		party.Points,
		party.UpdatedAt,
		party.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update party: %w", err)
	}
	if err := affectedOne(result, shared.ErrPartyNotFound, party.ID); err != nil {
		return err
	}

	if err := writeLists(ctx, tx, party); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit party: %w", err)
	}

	return nil
}

// UpdatePoints stores a recomputed point total without touching the lists.
func (r *PartyRepository) UpdatePoints(ctx context.Context, id string, points int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE parties SET points = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		points, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update party points: %w", err)
	}

	return affectedOne(result, shared.ErrPartyNotFound, id)
}

// Delete soft-deletes a party and drops its list rows
func (r *PartyRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE parties SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	if err := affectedOne(result, shared.ErrPartyNotFound, id); err != nil {
		return err
	}

	for _, table := range []string{"party_members", "party_songs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE party_id = ?", id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}

// List retrieves parties, optionally filtered by "location_id" (string) or "user_id" (string, membership).
func (r *PartyRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE deleted_at IS NULL`

	args := []any{}

	if locationID, ok := criteria["location_id"].(string); ok {
		query += " AND location_id = ?"
		args = append(args, locationID)
	}

	if userID, ok := criteria["user_id"].(string); ok {
		query += " AND id IN (SELECT party_id FROM party_members WHERE user_id = ?)"
		args = append(args, userID)
	}

	query += " ORDER BY sequence ASC"

	parties, err := r.queryParties(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// Lists are loaded after the cursor is closed; in-memory databases run on a single connection.
	for _, party := range parties {
		if err := r.loadLists(ctx, party); err != nil {
			return nil, err
		}
	}

	return parties, nil
}

func (r *PartyRepository) queryParties(ctx context.Context, query string, args ...any) ([]*models.Party, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []*models.Party{}
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return parties, nil
}

func (r *PartyRepository) loadLists(ctx context.Context, party *models.Party) error {
	var err error

	party.UserIDs, err = r.loadIDs(ctx, `SELECT user_id FROM party_members WHERE party_id = ? ORDER BY position ASC`, party.ID)
	if err != nil {
		return fmt.Errorf("failed to load party members: %w", err)
	}

	party.SongIDs, err = r.loadIDs(ctx, `SELECT song_id FROM party_songs WHERE party_id = ? ORDER BY position ASC`, party.ID)
	if err != nil {
		return fmt.Errorf("failed to load party songs: %w", err)
	}

	return nil
}

func (r *PartyRepository) loadIDs(ctx context.Context, query, partyID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func writeLists(ctx context.Context, tx execer, party *models.Party) error {
	if err := writeList(ctx, tx, "party_members", "user_id", party.ID, party.UserIDs); err != nil {
		return fmt.Errorf("failed to write party members: %w", err)
	}
	if err := writeList(ctx, tx, "party_songs", "song_id", party.ID, party.SongIDs); err != nil {
		return fmt.Errorf("failed to write party songs: %w", err)
	}
	return nil
}

func writeList(ctx context.Context, tx execer, table, column, partyID string, ids []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE party_id = ?", partyID); err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT OR IGNORE INTO %s (party_id, %s, position) VALUES (?, ?, ?)", table, column)
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, insert, partyID, id, i); err != nil {
			return err
		}
	}

	return nil
}

func scanParty(row scanner) (*models.Party, error) {
	var (
		party      models.Party
		locationID sql.NullString
		deletedAt  sql.NullTime
	)

	err := row.Scan(
		&party.ID,
		&party.Sequence,
		&party.Name,
		&party.Date,
		&locationID,
		&party.Points,
		&party.CreatedAt,
		&party.UpdatedAt,
		&deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan party: %w", err)
	}

	party.LocationID = locationID.String
	party.UserIDs = []string{}
	party.SongIDs = []string{}
	if deletedAt.Valid {
		party.DeletedAt = &deletedAt.Time
	}

	return &party, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
