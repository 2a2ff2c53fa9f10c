package catalog

import (
	"context"

	"github.com/desertthunder/partyx/internal/models"
)

// FoodSpec is the writable part of a food option.
type FoodSpec struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	PrepMinutes int     `json:"preparationTime"`
}

func (c *Catalog) CreateFood(ctx context.Context, spec FoodSpec) (*models.Food, error) {
	food := models.NewFood(spec.Name, spec.Price, spec.Rating, spec.PrepMinutes)
	if err := c.foods.Create(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (c *Catalog) GetFood(ctx context.Context, id string) (*models.Food, error) {
	return c.foods.Get(ctx, id)
}

func (c *Catalog) ListFoods(ctx context.Context) ([]*models.Food, error) {
	return c.foods.List(ctx, nil)
}

func (c *Catalog) UpdateFood(ctx context.Context, id string, spec FoodSpec) (*models.Food, error) {
	food, err := c.foods.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	food.Name = spec.Name
	food.Price = spec.Price
	food.Rating = spec.Rating
	food.PrepMinutes = spec.PrepMinutes

	if err := c.foods.Update(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (c *Catalog) DeleteFood(ctx context.Context, id string) error {
	return c.foods.Delete(ctx, id)
}
