package dto

import (
	"time"

	"craftlink/internal/usecase"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	JobPostID   uuid.UUID `json:"job_post_id"`
	UserID      uuid.UUID `json:"user_id"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type RequesterBookingResponse struct {
	BookingResponse
	JobTitle          string    `json:"job_title"`
	ClientID          uuid.UUID `json:"client_id"`
	ClientUsername    string    `json:"client_username"`
	ClientDisplayName string    `json:"client_display_name"`
}

type OwnerBookingResponse struct {
	BookingResponse
	JobTitle              string    `json:"job_title"`
	ContractorID          uuid.UUID `json:"contractor_id"`
	ContractorUsername    string    `json:"contractor_username"`
	ContractorDisplayName string    `json:"contractor_display_name"`
}

type AdminBookingResponse struct {
	BookingResponse
	JobTitle              string    `json:"job_title"`
	ContractorID          uuid.UUID `json:"contractor_id"`
	ContractorUsername    string    `json:"contractor_username"`
	ContractorDisplayName string    `json:"contractor_display_name"`
	ClientID              uuid.UUID `json:"client_id"`
	ClientUsername        string    `json:"client_username"`
	ClientDisplayName     string    `json:"client_display_name"`
}

func NewBookingResponse(b usecase.BookingItem) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		JobPostID:   b.JobPostID,
		UserID:      b.UserID,
		BookingDate: b.BookingDate,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

func NewRequesterBookingResponse(b usecase.RequesterBookingItem) RequesterBookingResponse {
	return RequesterBookingResponse{
		BookingResponse:   NewBookingResponse(b.BookingItem),
		JobTitle:          b.JobTitle,
		ClientID:          b.ClientID,
		ClientUsername:    b.ClientUsername,
		ClientDisplayName: b.ClientDisplayName,
	}
}

func NewOwnerBookingResponse(b usecase.OwnerBookingItem) OwnerBookingResponse {
	return OwnerBookingResponse{
		BookingResponse:       NewBookingResponse(b.BookingItem),
		JobTitle:              b.JobTitle,
		ContractorID:          b.ContractorID,
		ContractorUsername:    b.ContractorUsername,
		ContractorDisplayName: b.ContractorDisplayName,
	}
}

func NewAdminBookingResponse(b usecase.AdminBookingItem) AdminBookingResponse {
	return AdminBookingResponse{
		BookingResponse:       NewBookingResponse(b.BookingItem),
		JobTitle:              b.JobTitle,
		ContractorID:          b.ContractorID,
		ContractorUsername:    b.ContractorUsername,
		ContractorDisplayName: b.ContractorDisplayName,
		ClientID:              b.ClientID,
		ClientUsername:        b.ClientUsername,
		ClientDisplayName:     b.ClientDisplayName,
	}
}
