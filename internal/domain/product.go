package domain

import (
	"strconv"
	"time"
)

// Rating bounds accepted by the aggregator.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one rater's score for a product.
type Rating struct {
	UserID string `json:"userId" dynamodbav:"user_id"`
	Value  int    `json:"value" dynamodbav:"value"`
}

// AvgRating is a mean rating rounded to one decimal place. It is encoded
// in JSON with exactly one fractional digit (4 -> 4.0).
type AvgRating float64

func (a AvgRating) String() string {
	return strconv.FormatFloat(float64(a), 'f', 1, 64)
}

func (a AvgRating) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

type Product struct {
	ProductID   string    `json:"_id" dynamodbav:"product_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Description string    `json:"description" dynamodbav:"description"`
	CategoryID  string    `json:"categoryId" dynamodbav:"category_id"`
	Image       *string   `json:"image" dynamodbav:"image,omitempty"`
	Ratings     []Rating  `json:"ratings" dynamodbav:"ratings"`
	AvgRating   AvgRating `json:"avgRating" dynamodbav:"avg_rating"`
	Version     int64     `json:"-" dynamodbav:"version"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// CategoryRef is the joined view of a product's category.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ProductView is a product with its category reference resolved. Category is
// nil when the referenced category no longer exists.
type ProductView struct {
	ProductID   string       `json:"_id"`
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	Description string       `json:"description"`
	Category    *CategoryRef `json:"categoryId"`
	Image       *string      `json:"image"`
	Ratings     []Rating     `json:"ratings"`
	AvgRating   AvgRating    `json:"avgRating"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CreateProductInput struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"gt=0"`
	Description string  `validate:"required"`
	CategoryID  string  `validate:"required"`
	Image       *string
}

// UpdateProductInput carries only the fields to change.
type UpdateProductInput struct {
	Name        *string
	Price       *float64
	Description *string
	CategoryID  *string
	Image       *string
}
