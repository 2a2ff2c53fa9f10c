package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/repositories"
	"github.com/desertthunder/partyx/internal/shared"
	tu "github.com/desertthunder/partyx/internal/testing"
	"golang.org/x/crypto/bcrypt"
)

func newTestCatalog(t *testing.T) (*Catalog, *repositories.PartyRepository) {
	t.Helper()

	db := tu.SetupTestDB(t)
	c := New(Opts{
		Users:     repositories.NewUserRepository(db),
		Locations: repositories.NewLocationRepository(db),
		Songs:     repositories.NewSongRepository(db),
		Foods:     repositories.NewFoodRepository(db),
	})
	c.hashCost = bcrypt.MinCost
	return c, repositories.NewPartyRepository(db)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("PasswordIsHashed", func(t *testing.T) {
		c, _ := newTestCatalog(t)

		user, err := c.CreateUser(ctx, UserSpec{Name: "Alice", Email: "alice@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.PasswordHash == "password123" || user.PasswordHash == "" {
			t.Fatalf("expected a hash, got %q", user.PasswordHash)
		}

		stored, err := c.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
			t.Errorf("stored hash does not match password: %v", err)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		if _, err := c.CreateUser(ctx, UserSpec{Name: "Alice", Email: "alice@example.com", Password: "x"}); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		_, err := c.CreateUser(ctx, UserSpec{Name: "Other", Email: "alice@example.com", Password: "y"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("MissingPassword", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		_, err := c.CreateUser(ctx, UserSpec{Name: "Alice", Email: "alice@example.com"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("UpdateKeepsHashWithoutPassword", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		user, _ := c.CreateUser(ctx, UserSpec{Name: "Alice", Email: "alice@example.com", Password: "x"})
		hash := user.PasswordHash

		updated, err := c.UpdateUser(ctx, user.ID, UserSpec{Name: "Alice Smith", Email: "alice@example.com"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.PasswordHash != hash || updated.Name != "Alice Smith" {
			t.Errorf("unexpected user %+v", updated)
		}

		rehashed, err := c.UpdateUser(ctx, user.ID, UserSpec{Name: "Alice Smith", Email: "alice@example.com", Password: "new"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rehashed.PasswordHash == hash {
			t.Error("expected a new hash for a new password")
		}
	})

	t.Run("DeleteUnknown", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		if err := c.DeleteUser(ctx, "missing"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestLocations(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	location, err := c.CreateLocation(ctx, LocationSpec{Name: "Party Hall", Address: "123 Main St", Cost: 500, Rating: 4.5, Capacity: 100})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := c.UpdateLocation(ctx, location.ID, LocationSpec{Name: "Party Hall", Address: "123 Main St", Cost: 450, Rating: 4.6, Capacity: 120})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Cost != 450 || updated.Capacity != 120 {
		t.Errorf("unexpected location %+v", updated)
	}

	all, err := c.ListLocations(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one location, got %d, %v", len(all), err)
	}

	if err := c.DeleteLocation(ctx, location.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := c.GetLocation(ctx, location.ID); !errors.Is(err, shared.ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestSongs(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteScrubsPlaylists", func(t *testing.T) {
		c, parties := newTestCatalog(t)

		song, err := c.CreateSong(ctx, SongSpec{Title: "Happy Birthday", Artist: "Traditional"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		party := models.NewParty("Party1", "")
		party.SongIDs = []string{song.ID}
		if err := parties.Create(ctx, party); err != nil {
			t.Fatalf("failed to create party: %v", err)
		}

		if err := c.DeleteSong(ctx, song.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		stored, err := parties.Get(ctx, party.ID)
		if err != nil {
			t.Fatalf("failed to get party: %v", err)
		}
		if len(stored.SongIDs) != 0 {
			t.Errorf("expected playlist to be scrubbed, got %v", stored.SongIDs)
		}
	})

	t.Run("Update", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		song, _ := c.CreateSong(ctx, SongSpec{Title: "Celebration"})

		updated, err := c.UpdateSong(ctx, song.ID, SongSpec{Title: "Celebration", Artist: "Kool & The Gang", Link: "https://x"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Link != "https://x" || updated.Artist != "Kool & The Gang" {
			t.Errorf("unexpected song %+v", updated)
		}

		if _, err := c.UpdateSong(ctx, "missing", SongSpec{Title: "x"}); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})
}

func TestFoods(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	pizza, err := c.CreateFood(ctx, FoodSpec{Name: "Pizza", Price: 15.99, Rating: 4.5, PrepMinutes: 30})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := c.CreateFood(ctx, FoodSpec{Name: "", Price: 1}); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	updated, err := c.UpdateFood(ctx, pizza.ID, FoodSpec{Name: "Pizza", Price: 13.99, Rating: 4.5, PrepMinutes: 25})
	if err != nil || updated.Price != 13.99 {
		t.Fatalf("unexpected update result %+v, %v", updated, err)
	}

	foods, err := c.ListFoods(ctx)
	if err != nil || len(foods) != 1 {
		t.Fatalf("expected one food, got %d, %v", len(foods), err)
	}

	if err := c.DeleteFood(ctx, pizza.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := c.GetFood(ctx, pizza.ID); !errors.Is(err, shared.ErrFoodNotFound) {
		t.Errorf("expected ErrFoodNotFound, got %v", err)
	}
}
