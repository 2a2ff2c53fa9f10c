package party

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/services"
	"github.com/desertthunder/partyx/internal/shared"
)

// SongSpec is the caller-supplied part of a new song.
type SongSpec struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// PlaylistManager maintains a party's ordered song list.
type PlaylistManager struct {
	parties PartyStore
	songs   SongStore
	lookup  services.MediaLookup
	logger  *log.Logger
}

// NewPlaylistManager creates a [PlaylistManager]. A nil lookup stores every song without a link.
func NewPlaylistManager(parties PartyStore, songs SongStore, lookup services.MediaLookup, logger *log.Logger) *PlaylistManager {
	return &PlaylistManager{parties: parties, songs: songs, lookup: lookup, logger: orDiscard(logger)}
}

// SearchMedia resolves a link for title and artist, returning "" when none is available.
//
// Lookup failures are logged and absorbed.
func (m *PlaylistManager) SearchMedia(ctx context.Context, title, artist string) string {
	if m.lookup == nil {
		return ""
	}

	link, err := m.lookup.SearchLink(ctx, title, artist)
	switch {
	case err == nil:
		return link
	case errors.Is(err, shared.ErrNoMediaMatch):
		m.logger.Debug("no media match", "title", title, "artist", artist)
	case errors.Is(err, shared.ErrUpstreamUnavailable):
		m.logger.Warn("media lookup failed", "title", title, "artist", artist, "err", err)
	default:
		m.logger.Warn("media lookup failed", "title", title, "artist", artist,
			"err", fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err))
	}
	return ""
}

// AddSong stores a new song with whatever link the lookup yields and appends it to the playlist.
func (m *PlaylistManager) AddSong(ctx context.Context, partyID string, spec SongSpec) (*models.Song, error) {
	party, err := m.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	song := models.NewSong(spec.Title, spec.Artist)
	if err := song.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	song.Link = m.SearchMedia(ctx, spec.Title, spec.Artist)

	if err := m.songs.Create(ctx, song); err != nil {
		return nil, err
	}

	if !party.AddSong(song.ID) {
		return song, nil
	}

	if err := m.parties.Update(ctx, party); err != nil {
		if delErr := m.songs.Delete(ctx, song.ID); delErr != nil {
			m.logger.Error("failed to discard orphaned song", "song", song.ID, "err", delErr)
		}
		return nil, err
	}

	m.logger.Info("song added", "party", partyID, "song", song.ID, "linked", song.Link != "")
	return song, nil
}

// RemoveSong drops songID from the playlist and deletes the song.
//
// Fails with [shared.ErrSongNotInPlaylist] when the id is not in this party's list.
func (m *PlaylistManager) RemoveSong(ctx context.Context, partyID, songID string) error {
	party, err := m.parties.Get(ctx, partyID)
	if err != nil {
		return err
	}

	if !party.RemoveSong(songID) {
		return fmt.Errorf("%w: %s", shared.ErrSongNotInPlaylist, songID)
	}

	if err := m.parties.Update(ctx, party); err != nil {
		return err
	}

	if err := m.songs.Delete(ctx, songID); err != nil && !errors.Is(err, shared.ErrSongNotFound) {
		return err
	}

	m.logger.Info("song removed", "party", partyID, "song", songID)
	return nil
}

// Playlist returns the party's songs in playlist order. Ids whose song no longer exists are skipped.
func (m *PlaylistManager) Playlist(ctx context.Context, partyID string) ([]*models.Song, error) {
	party, err := m.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}
	return m.playlistSongs(ctx, party)
}

func (m *PlaylistManager) playlistSongs(ctx context.Context, party *models.Party) ([]*models.Song, error) {
	found, err := m.songs.List(ctx, map[string]any{"ids": party.SongIDs})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Song, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	songs := make([]*models.Song, 0, len(party.SongIDs))
	for _, id := range party.SongIDs {
		if s, ok := byID[id]; ok {
			songs = append(songs, s)
		} else {
			m.logger.Debug("skipping dangling song id", "party", party.ID, "song", id)
		}
	}

	return songs, nil
}
