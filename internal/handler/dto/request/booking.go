package request

import (
	"strings"

	"belizevibes-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	AdventureID       string  `json:"adventure_id" binding:"required,max=100"`
	BookingDate       string  `json:"booking_date" binding:"required"`
	TravelerName      string  `json:"traveler_name" binding:"required"`
	Email             string  `json:"email" binding:"required"`
	Phone             string  `json:"phone"`
	NumberOfTravelers int     `json:"number_of_travelers"`
	SpecialRequests   *string `json:"special_requests,omitempty"`
}

// ToInput leaves all business validation to the booking domain.
func (r CreateBookingRequest) ToInput(userID *uuid.UUID) booking.Input {
	var requests string
	if r.SpecialRequests != nil {
		requests = *r.SpecialRequests
	}
	return booking.Input{
		AdventureID:       strings.TrimSpace(r.AdventureID),
		UserID:            userID,
		BookingDate:       strings.TrimSpace(r.BookingDate),
		TravelerName:      r.TravelerName,
		Email:             r.Email,
		Phone:             r.Phone,
		NumberOfTravelers: r.NumberOfTravelers,
		SpecialRequests:   requests,
	}
}
