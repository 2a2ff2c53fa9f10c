package catalog

import (
	"context"

	"github.com/desertthunder/partyx/internal/models"
)

// LocationSpec is the writable part of a location.
type LocationSpec struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Cost     float64 `json:"cost"`
	Rating   float64 `json:"rating"`
	Capacity int     `json:"capacity"`
}

func (c *Catalog) CreateLocation(ctx context.Context, spec LocationSpec) (*models.Location, error) {
	location := models.NewLocation(spec.Name, spec.Address, spec.Cost, spec.Rating, spec.Capacity)
	if err := c.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (c *Catalog) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	return c.locations.Get(ctx, id)
}

func (c *Catalog) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return c.locations.List(ctx, nil)
}

func (c *Catalog) UpdateLocation(ctx context.Context, id string, spec LocationSpec) (*models.Location, error) {
	location, err := c.locations.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	location.Name = spec.Name
	location.Address = spec.Address
	location.Cost = spec.Cost
	location.Rating = spec.Rating
	location.Capacity = spec.Capacity

	if err := c.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteLocation removes a location. Parties that reference it keep the stale id.
func (c *Catalog) DeleteLocation(ctx context.Context, id string) error {
	return c.locations.Delete(ctx, id)
}
