package domain

import "time"

type PartyBooking struct {
	BookingID string    `json:"_id" dynamodbav:"booking_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Email     string    `json:"email" dynamodbav:"email"`
	Address   string    `json:"address" dynamodbav:"address"`
	Date      string    `json:"date" dynamodbav:"date"`
	Time      string    `json:"time" dynamodbav:"time"`
	Guests    int       `json:"guests" dynamodbav:"guests"`
	Message   string    `json:"message" dynamodbav:"message"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type PartyBookingRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time"`
	Guests  int    `json:"guests" validate:"gte=0"`
	Message string `json:"message"`
}
