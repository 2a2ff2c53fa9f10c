package party

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/shared"
)

// PartyStore persists parties. UpdatePoints writes only the point total.
type PartyStore interface {
	models.Repository[*models.Party]
	UpdatePoints(ctx context.Context, id string, points int) error
}

// TaskStore persists tasks. DeleteByParty removes every task of a party.
type TaskStore interface {
	models.Repository[*models.Task]
	DeleteByParty(ctx context.Context, partyID string) (int64, error)
}

type (
	UserStore     = models.Repository[*models.User]
	LocationStore = models.Repository[*models.Location]
	SongStore     = models.Repository[*models.Song]
)

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return shared.NewLogger(io.Discard)
	}
	return l
}
