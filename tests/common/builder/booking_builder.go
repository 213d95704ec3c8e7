//go:build unit || e2e

package builder

import (
	"time"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/money"
	reqdto "belizevibes-booking/internal/handler/dto/request"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/pgconv"
	"belizevibes-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// DefaultNow is the reference clock of every booking built here.
var DefaultNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID                uuid.UUID
	Reference         string
	AdventureID       string
	QuoteAdventureID  string
	Price             string
	Source            adventure.Source
	UserID            *uuid.UUID
	BookingDate       string
	TravelerName      string
	Email             string
	Phone             string
	NumberOfTravelers int
	SpecialRequests   string
	Currency          string
	Status            booking.Status
	PaymentStatus     booking.PaymentStatus
	PaymentSessionID  string
	Now               time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:                uuid.New(),
		Reference:         "BV-7fKq2mXa9P",
		AdventureID:       "tour-42",
		QuoteAdventureID:  "tour-42",
		Price:             "$100",
		Source:            adventure.SourceCatalog,
		BookingDate:       "2026-11-20",
		TravelerName:      "Maya Chen",
		Email:             "maya@example.com",
		Phone:             "+501 555 0142",
		NumberOfTravelers: 2,
		Currency:          booking.DefaultCurrency,
		Status:            booking.StatusPending,
		PaymentStatus:     booking.PaymentPending,
		Now:               DefaultNow,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithAdventureID(id string) *BookingBuilder {
	b.AdventureID = id
	return b
}

// WithQuote moves both the requested adventure and the quote.
func (b *BookingBuilder) WithQuote(adventureID, price string) *BookingBuilder {
	b.AdventureID = adventureID
	b.QuoteAdventureID = adventureID
	b.Price = price
	return b
}

func (b *BookingBuilder) WithPrice(price string) *BookingBuilder {
	b.Price = price
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = &id
	return b
}

func (b *BookingBuilder) WithBookingDate(date string) *BookingBuilder {
	b.BookingDate = date
	return b
}

func (b *BookingBuilder) WithTravelerName(name string) *BookingBuilder {
	b.TravelerName = name
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.Email = email
	return b
}

func (b *BookingBuilder) WithTravelers(n int) *BookingBuilder {
	b.NumberOfTravelers = n
	return b
}

func (b *BookingBuilder) WithSpecialRequests(s string) *BookingBuilder {
	b.SpecialRequests = s
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status, paymentStatus booking.PaymentStatus) *BookingBuilder {
	b.Status = status
	b.PaymentStatus = paymentStatus
	return b
}

func (b *BookingBuilder) WithPaymentSessionID(id string) *BookingBuilder {
	b.PaymentSessionID = id
	return b
}

// Build methods
func (b *BookingBuilder) BuildServices() *booking.Services {
	return &booking.Services{
		Clock:    clock.NewMockClock(b.Now),
		Currency: b.Currency,
	}
}

func (b *BookingBuilder) BuildQuote() adventure.PriceQuote {
	return adventure.PriceQuote{
		AdventureID:    b.QuoteAdventureID,
		PricePerPerson: money.MustParse(b.Price),
		Source:         b.Source,
	}
}

func (b *BookingBuilder) BuildInput() booking.Input {
	return booking.Input{
		AdventureID:       b.AdventureID,
		UserID:            b.UserID,
		BookingDate:       b.BookingDate,
		TravelerName:      b.TravelerName,
		Email:             b.Email,
		Phone:             b.Phone,
		NumberOfTravelers: b.NumberOfTravelers,
		SpecialRequests:   b.SpecialRequests,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(b.BuildServices(), b.BuildInput(), b.BuildQuote())
}

// BuildSnapshot skips validation, for states NewBooking cannot produce.
func (b *BookingBuilder) BuildSnapshot() booking.Snapshot {
	price := money.MustParse(b.Price)
	total, _ := price.Mul(b.NumberOfTravelers)
	date, _ := booking.ParseDate(b.BookingDate)

	return booking.Snapshot{
		ID:               b.ID,
		Reference:        b.Reference,
		AdventureID:      b.QuoteAdventureID,
		UserID:           b.UserID,
		BookingDate:      date,
		TravelerName:     b.TravelerName,
		Email:            b.Email,
		Phone:            b.Phone,
		Travelers:        b.NumberOfTravelers,
		SpecialRequests:  b.SpecialRequests,
		PricePerPerson:   price,
		TotalAmount:      total,
		Currency:         b.Currency,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		PaymentSessionID: b.PaymentSessionID,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}

func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	s := b.BuildSnapshot()
	return sqlc.Bookings{
		ID:                  s.ID,
		Reference:           s.Reference,
		AdventureID:         s.AdventureID,
		UserID:              pgconv.UUIDPtrToPgtype(s.UserID),
		BookingDate:         pgconv.DateToPgtype(s.BookingDate.Time()),
		TravelerName:        s.TravelerName,
		Email:               s.Email,
		Phone:               s.Phone,
		NumberOfTravelers:   int32(s.Travelers),
		SpecialRequests:     pgconv.OptionalText(s.SpecialRequests),
		PricePerPersonCents: s.PricePerPerson.Cents(),
		TotalAmountCents:    s.TotalAmount.Cents(),
		Currency:            s.Currency,
		Status:              string(s.Status),
		PaymentStatus:       string(s.PaymentStatus),
		PaymentSessionID:    pgconv.OptionalText(s.PaymentSessionID),
		CreatedAt:           pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:           pgconv.TimeToPgtype(s.UpdatedAt),
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	s := b.BuildSnapshot()
	return queries.ViewFromSnapshot(s)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		AdventureID:       b.AdventureID,
		BookingDate:       b.BookingDate,
		TravelerName:      b.TravelerName,
		Email:             b.Email,
		Phone:             b.Phone,
		NumberOfTravelers: b.NumberOfTravelers,
	}
	if b.SpecialRequests != "" {
		requests := b.SpecialRequests
		req.SpecialRequests = &requests
	}
	return req
}
