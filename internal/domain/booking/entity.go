package booking

import (
	"strings"
	"time"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/domain/money"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultCurrency = "USD"

type Services struct {
	Clock      clock.Clock
	Currency   string
	References ReferenceGenerator
}

// Input is the traveler-supplied part of a booking form.
type Input struct {
	AdventureID       string
	UserID            *uuid.UUID
	BookingDate       string
	TravelerName      string
	Email             string
	Phone             string
	NumberOfTravelers int
	SpecialRequests   string
}

type Booking struct {
	id               uuid.UUID
	reference        string
	adventureID      string
	userID           *uuid.UUID
	bookingDate      Date
	travelerName     string
	email            Email
	phone            string
	travelers        Travelers
	specialRequests  string
	pricePerPerson   money.Money
	totalAmount      money.Money
	currency         string
	status           Status
	paymentStatus    PaymentStatus
	paymentSessionID string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewBooking validates the input against the quote and returns a pending booking.
// It has no side effects.
func NewBooking(services *Services, in Input, quote adventure.PriceQuote) (*Booking, error) {
	travelers, err := NewTravelers(in.NumberOfTravelers)
	if err != nil {
		return nil, err
	}

	email, err := NewEmail(in.Email)
	if err != nil {
		return nil, err
	}

	date, err := ParseDate(in.BookingDate)
	if err != nil {
		return nil, err
	}
	now := services.Clock.Now()
	if date.Before(DateOf(now)) {
		return nil, errs.Mark(ErrDateInPast, ErrValidation)
	}

	name, err := boundedText(in.TravelerName, MaxTravelerNameLength, ErrTravelerNameTooLong)
	if err != nil {
		return nil, err
	}
	phone, err := boundedText(in.Phone, MaxPhoneLength, ErrPhoneTooLong)
	if err != nil {
		return nil, err
	}
	requests, err := boundedText(in.SpecialRequests, MaxSpecialRequestsLength, ErrSpecialRequestsTooLong)
	if err != nil {
		return nil, err
	}

	adventureID := strings.TrimSpace(in.AdventureID)
	if adventureID != "" && adventureID != quote.AdventureID {
		return nil, errs.Mark(ErrQuoteMismatch, ErrValidation)
	}
	if quote.PricePerPerson.Cents() <= 0 {
		return nil, errs.Mark(ErrInvalidPrice, ErrValidation)
	}
	total, err := quote.PricePerPerson.Mul(travelers.Int())
	if err != nil {
		return nil, errs.Mark(ErrTotalOverflow, ErrValidation)
	}

	currency := services.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	refs := services.References
	if refs == nil {
		refs = ShortReferences{}
	}

	return &Booking{
		id:              uuid.New(),
		reference:       refs.NewReference(),
		adventureID:     quote.AdventureID,
		userID:          in.UserID,
		bookingDate:     date,
		travelerName:    name,
		email:           email,
		phone:           phone,
		travelers:       travelers,
		specialRequests: requests,
		pricePerPerson:  quote.PricePerPerson,
		totalAmount:     total,
		currency:        strings.ToUpper(currency),
		status:          StatusPending,
		paymentStatus:   PaymentPending,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Snapshot carries persisted state back into the domain.
type Snapshot struct {
	ID               uuid.UUID
	Reference        string
	AdventureID      string
	UserID           *uuid.UUID
	BookingDate      Date
	TravelerName     string
	Email            string
	Phone            string
	Travelers        int
	SpecialRequests  string
	PricePerPerson   money.Money
	TotalAmount      money.Money
	Currency         string
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentSessionID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:               s.ID,
		reference:        s.Reference,
		adventureID:      s.AdventureID,
		userID:           s.UserID,
		bookingDate:      s.BookingDate,
		travelerName:     s.TravelerName,
		email:            Email(s.Email),
		phone:            s.Phone,
		travelers:        Travelers(s.Travelers),
		specialRequests:  s.SpecialRequests,
		pricePerPerson:   s.PricePerPerson,
		totalAmount:      s.TotalAmount,
		currency:         s.Currency,
		status:           s.Status,
		paymentStatus:    s.PaymentStatus,
		paymentSessionID: s.PaymentSessionID,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:               b.id,
		Reference:        b.reference,
		AdventureID:      b.adventureID,
		UserID:           b.userID,
		BookingDate:      b.bookingDate,
		TravelerName:     b.travelerName,
		Email:            b.email.String(),
		Phone:            b.phone,
		Travelers:        b.travelers.Int(),
		SpecialRequests:  b.specialRequests,
		PricePerPerson:   b.pricePerPerson,
		TotalAmount:      b.totalAmount,
		Currency:         b.currency,
		Status:           b.status,
		PaymentStatus:    b.paymentStatus,
		PaymentSessionID: b.paymentSessionID,
		CreatedAt:        b.createdAt,
		UpdatedAt:        b.updatedAt,
	}
}

// Confirm is the only way to reach confirmed, and it always pairs with paid.
func (b *Booking) Confirm(at time.Time) error {
	if b.IsConfirmed() {
		return ErrAlreadyConfirmed
	}
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.paymentStatus = PaymentPaid
	b.updatedAt = at
	return nil
}

func (b *Booking) MarkPaymentFailed(at time.Time) error {
	if b.status != StatusPending || b.paymentStatus == PaymentPaid {
		return ErrInvalidTransition
	}
	b.paymentStatus = PaymentFailed
	b.updatedAt = at
	return nil
}

func (b *Booking) AttachPaymentSession(sessionID string, at time.Time) error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.paymentSessionID = sessionID
	b.updatedAt = at
	return nil
}

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed && b.paymentStatus == PaymentPaid
}

func (b *Booking) IsPayable() bool {
	return b.status == StatusPending && b.paymentStatus != PaymentPaid
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Reference() string            { return b.reference }
func (b *Booking) AdventureID() string          { return b.adventureID }
func (b *Booking) UserID() *uuid.UUID           { return b.userID }
func (b *Booking) BookingDate() Date            { return b.bookingDate }
func (b *Booking) TravelerName() string         { return b.travelerName }
func (b *Booking) Email() Email                 { return b.email }
func (b *Booking) Phone() string                { return b.phone }
func (b *Booking) NumberOfTravelers() int       { return b.travelers.Int() }
func (b *Booking) SpecialRequests() string      { return b.specialRequests }
func (b *Booking) PricePerPerson() money.Money  { return b.pricePerPerson }
func (b *Booking) TotalAmount() money.Money     { return b.totalAmount }
func (b *Booking) Currency() string             { return b.currency }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) PaymentSessionID() string     { return b.paymentSessionID }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
