package party

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/services"
	"github.com/desertthunder/partyx/internal/shared"
)

// PartySpec carries the caller-writable party fields.
type PartySpec struct {
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	UserIDs    []string `json:"userIds"`
	LocationID string   `json:"locationId"`
}

// Stores groups the repositories a [Coordinator] works on.
type Stores struct {
	Parties   PartyStore
	Users     UserStore
	Locations LocationStore
	Songs     SongStore
	Tasks     TaskStore
}

// Coordinator is the entry point for party-scoped operations.
type Coordinator struct {
	parties   PartyStore
	users     UserStore
	locations LocationStore

	matcher  *LocationMatcher
	playlist *PlaylistManager
	tasks    *TaskEngine
	logger   *log.Logger
}

// NewCoordinator wires the matcher, playlist manager and task engine over stores.
func NewCoordinator(stores Stores, lookup services.MediaLookup, logger *log.Logger) *Coordinator {
	logger = orDiscard(logger)

	return &Coordinator{
		parties:   stores.Parties,
		users:     stores.Users,
		locations: stores.Locations,
		matcher:   NewLocationMatcher(stores.Parties, stores.Locations, shared.WithLogger(logger, "component", "matcher")),
		playlist:  NewPlaylistManager(stores.Parties, stores.Songs, lookup, shared.WithLogger(logger, "component", "playlist")),
		tasks:     NewTaskEngine(stores.Tasks, stores.Parties, stores.Users, shared.WithLogger(logger, "component", "tasks")),
		logger:    logger,
	}
}

// Tasks returns the task engine.
func (c *Coordinator) Tasks() *TaskEngine { return c.tasks }

// CreateParty stores a party after resolving its members and venue.
func (c *Coordinator) CreateParty(ctx context.Context, spec PartySpec) (*models.Party, error) {
	party := models.NewParty(spec.Name, spec.Date)

	for _, userID := range spec.UserIDs {
		if _, err := c.users.Get(ctx, userID); err != nil {
			return nil, err
		}
		party.AddUser(userID)
	}

	if spec.LocationID != "" {
		if _, err := c.locations.Get(ctx, spec.LocationID); err != nil {
			return nil, err
		}
		party.LocationID = spec.LocationID
	}

	if err := c.parties.Create(ctx, party); err != nil {
		return nil, err
	}

	c.logger.Info("party created", "party", party.ID, "name", party.Name)
	return party, nil
}

// GetParty returns a party by id.
func (c *Coordinator) GetParty(ctx context.Context, id string) (*models.Party, error) {
	return c.parties.Get(ctx, id)
}

// ListParties returns every party, or only those userID belongs to when set.
func (c *Coordinator) ListParties(ctx context.Context, userID string) ([]*models.Party, error) {
	criteria := map[string]any{}
	if userID != "" {
		criteria["user_id"] = userID
	}
	return c.parties.List(ctx, criteria)
}

// UpdateParty renames and reschedules a party. Members, venue, playlist and points have their own operations.
func (c *Coordinator) UpdateParty(ctx context.Context, id string, spec PartySpec) (*models.Party, error) {
	party, err := c.parties.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	party.Name = spec.Name
	party.Date = spec.Date

	if err := c.parties.Update(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// DeleteParty removes a party together with its tasks.
func (c *Coordinator) DeleteParty(ctx context.Context, id string) error {
	if _, err := c.parties.Get(ctx, id); err != nil {
		return err
	}

	n, err := c.tasks.tasks.DeleteByParty(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete party tasks: %w", err)
	}

	if err := c.parties.Delete(ctx, id); err != nil {
		return err
	}

	c.logger.Info("party deleted", "party", id, "tasks", n)
	return nil
}

// AddMember appends an existing user to the party's members.
func (c *Coordinator) AddMember(ctx context.Context, partyID, userID string) (*models.Party, error) {
	party, err := c.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if _, err := c.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	if !party.AddUser(userID) {
		return party, nil
	}

	if err := c.parties.Update(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// RemoveMember drops a user from the party's members. Removing a non-member succeeds.
func (c *Coordinator) RemoveMember(ctx context.Context, partyID, userID string) (*models.Party, error) {
	party, err := c.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if !party.RemoveUser(userID) {
		return party, nil
	}

	if err := c.parties.Update(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// Score recomputes and returns the party's point total.
func (c *Coordinator) Score(ctx context.Context, partyID string) (int, error) {
	if _, err := c.parties.Get(ctx, partyID); err != nil {
		return 0, err
	}
	return c.tasks.Recompute(ctx, partyID)
}

// AvailableLocations delegates to [LocationMatcher.AvailableLocations].
func (c *Coordinator) AvailableLocations(ctx context.Context, partyID string, filter LocationFilter) ([]*models.Location, error) {
	return c.matcher.AvailableLocations(ctx, partyID, filter)
}

// AssignLocation delegates to [LocationMatcher.AssignLocation].
func (c *Coordinator) AssignLocation(ctx context.Context, partyID, locationID string) (*models.Party, error) {
	return c.matcher.AssignLocation(ctx, partyID, locationID)
}

// RemoveLocation delegates to [LocationMatcher.RemoveLocation].
func (c *Coordinator) RemoveLocation(ctx context.Context, partyID string) (*models.Party, error) {
	return c.matcher.RemoveLocation(ctx, partyID)
}

// AddSong delegates to [PlaylistManager.AddSong].
func (c *Coordinator) AddSong(ctx context.Context, partyID string, spec SongSpec) (*models.Song, error) {
	return c.playlist.AddSong(ctx, partyID, spec)
}

// RemoveSong delegates to [PlaylistManager.RemoveSong].
func (c *Coordinator) RemoveSong(ctx context.Context, partyID, songID string) error {
	return c.playlist.RemoveSong(ctx, partyID, songID)
}

// Playlist delegates to [PlaylistManager.Playlist].
func (c *Coordinator) Playlist(ctx context.Context, partyID string) ([]*models.Song, error) {
	return c.playlist.Playlist(ctx, partyID)
}

// SearchMedia delegates to [PlaylistManager.SearchMedia].
func (c *Coordinator) SearchMedia(ctx context.Context, title, artist string) string {
	return c.playlist.SearchMedia(ctx, title, artist)
}

// ResolveMissingLinks delegates to [PlaylistManager.ResolveMissingLinks].
func (c *Coordinator) ResolveMissingLinks(ctx context.Context, partyID string, progress chan<- ProgressUpdate, opts ResolveOpts) (*ResolveResult, error) {
	return c.playlist.ResolveMissingLinks(ctx, partyID, progress, opts)
}

// Plan gathers everything needed to print or export a party.
func (c *Coordinator) Plan(ctx context.Context, partyID string) (*Plan, error) {
	party, err := c.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Party: party, Members: []*models.User{}}

	if party.LocationID != "" {
		// A venue deleted after assignment is reported as none.
		if loc, err := c.locations.Get(ctx, party.LocationID); err == nil {
			plan.Location = loc
		}
	}

	for _, userID := range party.UserIDs {
		if user, err := c.users.Get(ctx, userID); err == nil {
			plan.Members = append(plan.Members, user)
		}
	}

	if plan.Songs, err = c.playlist.playlistSongs(ctx, party); err != nil {
		return nil, err
	}
	if plan.Tasks, err = c.tasks.TasksForParty(ctx, partyID); err != nil {
		return nil, err
	}

	return plan, nil
}

// Plan is a party with its references resolved.
type Plan struct {
	Party    *models.Party    `json:"party"`
	Location *models.Location `json:"location,omitempty"`
	Members  []*models.User   `json:"members"`
	Songs    []*models.Song   `json:"songs"`
	Tasks    []*models.Task   `json:"tasks"`
}
