package domain

type Category struct {
	CategoryID   string  `json:"_id" dynamodbav:"category_id"`
	RestaurantID string  `json:"restaurantId" dynamodbav:"restaurant_id"`
	Name         string  `json:"name" dynamodbav:"name"`
	Image        *string `json:"image" dynamodbav:"image,omitempty"`
}

type CategoryInput struct {
	Name         string `validate:"required"`
	RestaurantID string `validate:"required"`
	Image        *string
}

// UpdateCategoryInput carries only the fields to change.
type UpdateCategoryInput struct {
	Name  *string
	Image *string
}
