package restaurants

import "github.com/mmcdole/tablemap/internal/domain"

// APIResponse is the top-level envelope: {"data": {"restaurant": {"items": [...]}}}
type APIResponse struct {
	Data *DataContainer `json:"data" validate:"required"`
}

// DataContainer wraps the restaurant collection
type DataContainer struct {
	Restaurant *RestaurantContainer `json:"restaurant" validate:"required"`
}

// RestaurantContainer holds the list. An empty list is valid; a missing one is not.
type RestaurantContainer struct {
	Items []domain.Restaurant `json:"items" validate:"required"`
}
