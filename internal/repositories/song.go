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

// SongRepository implements [models.Repository] for [models.Song] persistence.
//
// Each row also stores a normalized title/artist lookup key so resolved links can be reused, see [LinkCache].
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new [SongRepository] with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

const songColumns = `id, sequence, title, artist, link, created_at, updated_at, deleted_at`

// Create inserts a new song with generated ID and sequence
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(ctx, r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	song.ID = shared.GenerateID()
	song.Sequence = sequence
	song.Touch(time.Now())

	query := `
		INSERT INTO songs (id, sequence, title, artist, link, lookup_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		song.ID,
		sequence,
		song.Title,
		song.Artist,
		song.Link,
		shared.NormalizeSongKey(song.Title, song.Artist),
		song.CreatedAt,
		song.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(ctx context.Context, id string) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ? AND deleted_at IS NULL`

	song, err := scanSong(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return song, err
}

// Update modifies an existing song
func (r *SongRepository) Update(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	song.Touch(time.Now())

	query := `
		UPDATE songs
		SET title = ?, artist = ?, link = ?, lookup_key = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		song.Title,
		song.Artist,
		song.Link,
		shared.NormalizeSongKey(song.Title, song.Artist),
		song.UpdatedAt,
		song.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	return affectedOne(result, shared.ErrSongNotFound, song.ID)
}

// Delete soft-deletes a song and removes its id from every party playlist in one transaction.
func (r *SongRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE songs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if err := affectedOne(result, shared.ErrSongNotFound, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM party_songs WHERE song_id = ?`, id); err != nil {
		return fmt.Errorf("failed to scrub song from playlists: %w", err)
	}

	return tx.Commit()
}

// List retrieves all songs, optionally restricted to "ids" ([]string) or "missing_link" (bool).
func (r *SongRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL`

	args := []any{}

	if ids, ok := criteria["ids"].([]string); ok {
		if len(ids) == 0 {
			return []*models.Song{}, nil
		}
		query += " AND id IN (" + placeholders(len(ids)) + ")"
		for _, id := range ids {
			args = append(args, id)
		}
	}

	if missing, ok := criteria["missing_link"].(bool); ok && missing {
		query += " AND link = ''"
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []*models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// FindLink returns the most recently stored non-empty link for a normalized title/artist key.
//
// Soft-deleted songs are included: a resolved link stays valid after its song leaves a playlist.
func (r *SongRepository) FindLink(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT link FROM songs
		WHERE lookup_key = ? AND link != ''
		ORDER BY sequence DESC
		LIMIT 1
	`

	var link string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&link)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cached link: %w", err)
	}

	return link, true, nil
}

func scanSong(row scanner) (*models.Song, error) {
	var (
		song      models.Song
		deletedAt sql.NullTime
	)

	err := row.Scan(&song.ID, &song.Sequence, &song.Title, &song.Artist, &song.Link, &song.CreatedAt, &song.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	if deletedAt.Valid {
		song.DeletedAt = &deletedAt.Time
	}

	return &song, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, 2*n-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '?')
	}
	return string(b)
}
