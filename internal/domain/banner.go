package domain

import "time"

type Banner struct {
	BannerID  string    `json:"_id" dynamodbav:"banner_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Subtitle  string    `json:"subtitle" dynamodbav:"subtitle"`
	Discount  float64   `json:"discount" dynamodbav:"discount"`
	Image     string    `json:"image" dynamodbav:"image"`
	Active    bool      `json:"active" dynamodbav:"active"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type BannerInput struct {
	Title    string
	Subtitle string
	Discount float64
	Active   *bool
	Image    *string
}

// UpdateBannerInput carries only the fields to change.
type UpdateBannerInput struct {
	Title    *string
	Subtitle *string
	Discount *float64
	Active   *bool
	Image    *string
}
