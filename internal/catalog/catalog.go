// Package catalog manages the standalone records parties refer to: users, locations, songs and foods.
package catalog

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStore persists users and looks them up by email.
type UserStore interface {
	models.Repository[*models.User]
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Catalog provides CRUD over the reference entities.
type Catalog struct {
	users     UserStore
	locations models.Repository[*models.Location]
	songs     models.Repository[*models.Song]
	foods     models.Repository[*models.Food]
	hashCost  int
	logger    *log.Logger
}

// Opts contains the stores a [Catalog] works on.
type Opts struct {
	Users     UserStore
	Locations models.Repository[*models.Location]
	Songs     models.Repository[*models.Song]
	Foods     models.Repository[*models.Food]
	Logger    *log.Logger
}

// New creates a [Catalog].
func New(opts Opts) *Catalog {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	return &Catalog{
		users:     opts.Users,
		locations: opts.Locations,
		songs:     opts.Songs,
		foods:     opts.Foods,
		hashCost:  bcrypt.DefaultCost,
		logger:    opts.Logger,
	}
}
