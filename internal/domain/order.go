package domain

import "time"

// Customer is a snapshot copied into the order at placement time.
type Customer struct {
	Name    string `json:"name" dynamodbav:"name"`
	Email   string `json:"email" dynamodbav:"email"`
	Mobile  string `json:"mobile" dynamodbav:"mobile"`
	Address string `json:"address" dynamodbav:"address"`
}

type OrderItem struct {
	ProductID string `json:"productId" dynamodbav:"product_id"`
	Qty       int    `json:"qty" dynamodbav:"qty"`
}

type Order struct {
	OrderID  string      `json:"_id" dynamodbav:"order_id"`
	Customer Customer    `json:"customer" dynamodbav:"customer"`
	Items    []OrderItem `json:"items" dynamodbav:"items"`
	Total    float64     `json:"total" dynamodbav:"total"`
	// Flattened for the customer_mobile-created_at-index GSI.
	CustomerMobile string    `json:"-" dynamodbav:"customer_mobile"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// ProductSummary is the joined view of an ordered product.
type ProductSummary struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image *string `json:"image,omitempty"`
}

type OrderItemView struct {
	Product *ProductSummary `json:"productId"`
	Qty     int             `json:"qty"`
}

// OrderView is an order with its product references resolved. Product is nil
// for items whose product has since been deleted.
type OrderView struct {
	OrderID   string          `json:"_id"`
	Customer  Customer        `json:"customer"`
	Items     []OrderItemView `json:"items"`
	Total     float64         `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PlaceOrderRequest is the client payload for placing an order. Items use
// the catalog's "_id" field name for the product reference.
type PlaceOrderRequest struct {
	Customer *Customer          `json:"customer"`
	Items    []OrderItemRequest `json:"items"`
	Total    float64            `json:"total"`
}

type OrderItemRequest struct {
	ProductID string `json:"_id"`
	Qty       int    `json:"qty"`
}
