package catalog

import (
	"context"

	"github.com/desertthunder/partyx/internal/models"
)

// SongSpec is the writable part of a song.
type SongSpec struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Link   string `json:"link"`
}

// CreateSong stores a song outside any playlist, with the link as given.
func (c *Catalog) CreateSong(ctx context.Context, spec SongSpec) (*models.Song, error) {
	song := models.NewSong(spec.Title, spec.Artist)
	song.Link = spec.Link
	if err := c.songs.Create(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

func (c *Catalog) GetSong(ctx context.Context, id string) (*models.Song, error) {
	return c.songs.Get(ctx, id)
}

func (c *Catalog) ListSongs(ctx context.Context) ([]*models.Song, error) {
	return c.songs.List(ctx, nil)
}

func (c *Catalog) UpdateSong(ctx context.Context, id string, spec SongSpec) (*models.Song, error) {
	song, err := c.songs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	song.Title = spec.Title
	song.Artist = spec.Artist
	song.Link = spec.Link

	if err := c.songs.Update(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

// DeleteSong removes a song and scrubs its id from every playlist.
func (c *Catalog) DeleteSong(ctx context.Context, id string) error {
	if err := c.songs.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("song deleted", "song", id)
	return nil
}
