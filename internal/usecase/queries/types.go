package queries

import (
	"time"

	"belizevibes-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID                  uuid.UUID  `json:"id"`
	Reference           string     `json:"reference"`
	AdventureID         string     `json:"adventure_id"`
	UserID              *uuid.UUID `json:"user_id,omitempty"`
	BookingDate         string     `json:"booking_date"`
	TravelerName        string     `json:"traveler_name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	NumberOfTravelers   int        `json:"number_of_travelers"`
	SpecialRequests     string     `json:"special_requests,omitempty"`
	PricePerPersonCents int64      `json:"price_per_person_cents"`
	TotalAmountCents    int64      `json:"total_amount_cents"`
	Currency            string     `json:"currency"`
	Status              string     `json:"status"`
	PaymentStatus       string     `json:"payment_status"`
	PaymentSessionID    string     `json:"payment_session_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// BookingListItem is the compact row of a traveler's booking history
type BookingListItem struct {
	ID                uuid.UUID `json:"id"`
	Reference         string    `json:"reference"`
	AdventureID       string    `json:"adventure_id"`
	BookingDate       string    `json:"booking_date"`
	NumberOfTravelers int       `json:"number_of_travelers"`
	TotalAmountCents  int64     `json:"total_amount_cents"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	CreatedAt         time.Time `json:"created_at"`
}

func ViewFromSnapshot(s booking.Snapshot) *BookingView {
	return &BookingView{
		ID:                  s.ID,
		Reference:           s.Reference,
		AdventureID:         s.AdventureID,
		UserID:              s.UserID,
		BookingDate:         s.BookingDate.String(),
		TravelerName:        s.TravelerName,
		Email:               s.Email,
		Phone:               s.Phone,
		NumberOfTravelers:   s.Travelers,
		SpecialRequests:     s.SpecialRequests,
		PricePerPersonCents: s.PricePerPerson.Cents(),
		TotalAmountCents:    s.TotalAmount.Cents(),
		Currency:            s.Currency,
		Status:              string(s.Status),
		PaymentStatus:       string(s.PaymentStatus),
		PaymentSessionID:    s.PaymentSessionID,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func ListItemFromView(v *BookingView) *BookingListItem {
	return &BookingListItem{
		ID:                v.ID,
		Reference:         v.Reference,
		AdventureID:       v.AdventureID,
		BookingDate:       v.BookingDate,
		NumberOfTravelers: v.NumberOfTravelers,
		TotalAmountCents:  v.TotalAmountCents,
		Currency:          v.Currency,
		Status:            v.Status,
		PaymentStatus:     v.PaymentStatus,
		CreatedAt:         v.CreatedAt,
	}
}
