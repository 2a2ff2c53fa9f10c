package party

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/partyx/internal/models"
)

// LocationFilter bounds a venue search. Nil fields are unbounded.
type LocationFilter struct {
	MinRating   *float64
	MaxCost     *float64
	MinCapacity *int
}

func (f LocationFilter) criteria() map[string]any {
	criteria := map[string]any{}
	if f.MinRating != nil {
		criteria["min_rating"] = *f.MinRating
	}
	if f.MaxCost != nil {
		criteria["max_cost"] = *f.MaxCost
	}
	if f.MinCapacity != nil {
		criteria["min_capacity"] = *f.MinCapacity
	}
	return criteria
}

// LocationMatcher finds and assigns venues for a party.
type LocationMatcher struct {
	parties   PartyStore
	locations LocationStore
	logger    *log.Logger
}

// NewLocationMatcher creates a [LocationMatcher].
func NewLocationMatcher(parties PartyStore, locations LocationStore, logger *log.Logger) *LocationMatcher {
	return &LocationMatcher{parties: parties, locations: locations, logger: orDiscard(logger)}
}

// AvailableLocations returns every venue satisfying all bounds of filter, in storage order.
//
// The party's current venue is not excluded. An empty result is not an error.
func (m *LocationMatcher) AvailableLocations(ctx context.Context, partyID string, filter LocationFilter) ([]*models.Location, error) {
	if _, err := m.parties.Get(ctx, partyID); err != nil {
		return nil, err
	}
	return m.locations.List(ctx, filter.criteria())
}

// AssignLocation sets the party's venue. Nothing is written when either lookup fails
// or the venue is already assigned.
func (m *LocationMatcher) AssignLocation(ctx context.Context, partyID, locationID string) (*models.Party, error) {
	party, err := m.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if _, err := m.locations.Get(ctx, locationID); err != nil {
		return nil, err
	}

	if party.LocationID == locationID {
		return party, nil
	}

	party.LocationID = locationID
	if err := m.parties.Update(ctx, party); err != nil {
		return nil, err
	}

	m.logger.Debug("location assigned", "party", partyID, "location", locationID)
	return party, nil
}

// RemoveLocation clears the party's venue. Removing an absent venue succeeds.
func (m *LocationMatcher) RemoveLocation(ctx context.Context, partyID string) (*models.Party, error) {
	party, err := m.parties.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if party.LocationID == "" {
		return party, nil
	}

	party.LocationID = ""
	if err := m.parties.Update(ctx, party); err != nil {
		return nil, err
	}

	m.logger.Debug("location removed", "party", partyID)
	return party, nil
}
