package response

import (
	"time"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/money"
	"belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// copyOpts renders ids as strings, timestamps as unix seconds and money as
// decimal strings.
var copyOpts = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn:      func(src any) (any, error) { return src.(uuid.UUID).String(), nil },
		},
		{
			SrcType: (*uuid.UUID)(nil),
			DstType: (*string)(nil),
			Fn: func(src any) (any, error) {
				id := src.(*uuid.UUID)
				if id == nil {
					return (*string)(nil), nil
				}
				s := id.String()
				return &s, nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn:      func(src any) (any, error) { return src.(time.Time).Unix(), nil },
		},
		{
			SrcType: money.Money{},
			DstType: copier.String,
			Fn:      func(src any) (any, error) { return src.(money.Money).String(), nil },
		},
	},
}

type BookingResponse struct {
	ID                string  `json:"id"`
	Reference         string  `json:"reference"`
	AdventureID       string  `json:"adventure_id"`
	UserID            *string `json:"user_id,omitempty"`
	BookingDate       string  `json:"booking_date"`
	TravelerName      string  `json:"traveler_name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	NumberOfTravelers int     `json:"number_of_travelers"`
	SpecialRequests   string  `json:"special_requests,omitempty"`
	PricePerPerson    string  `json:"price_per_person"`
	TotalAmount       string  `json:"total_amount"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
	PaymentStatus     string  `json:"payment_status"`
	CreatedAt         int64   `json:"created_at"`
	UpdatedAt         int64   `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	res := &BookingResponse{}
	if err := copier.CopyWithOption(res, v, copyOpts); err != nil {
		return nil, errs.Wrap(err, "render booking")
	}
	res.PricePerPerson = money.FromCents(v.PricePerPersonCents).String()
	res.TotalAmount = money.FromCents(v.TotalAmountCents).String()
	return res, nil
}

func FromBooking(b *booking.Booking) (*BookingResponse, error) {
	return FromBookingView(queries.ViewFromSnapshot(b.Snapshot()))
}

type BookingListItemResponse struct {
	ID                string `json:"id"`
	Reference         string `json:"reference"`
	AdventureID       string `json:"adventure_id"`
	BookingDate       string `json:"booking_date"`
	NumberOfTravelers int    `json:"number_of_travelers"`
	TotalAmount       string `json:"total_amount"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
	CreatedAt         int64  `json:"created_at"`
}

type BookingListResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	NextCursor string                     `json:"next_cursor,omitempty"`
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) (*BookingListResponse, error) {
	res := &BookingListResponse{Items: make([]*BookingListItemResponse, len(items))}
	for i, it := range items {
		row := &BookingListItemResponse{}
		if err := copier.CopyWithOption(row, it, copyOpts); err != nil {
			return nil, errs.Wrapf(err, "render booking list item %d", i)
		}
		row.TotalAmount = money.FromCents(it.TotalAmountCents).String()
		res.Items[i] = row
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}

type PaymentIntentResponse struct {
	BookingID                string `json:"booking_id"`
	SessionID                string `json:"session_id"`
	ClientSecretOrSessionURL string `json:"client_secret_or_session_url"`
	Amount                   string `json:"amount"`
	AmountMinor              int64  `json:"amount_minor"`
	Currency                 string `json:"currency"`
}

func FromIntent(in *payment.Intent) (*PaymentIntentResponse, error) {
	res := &PaymentIntentResponse{}
	if err := copier.CopyWithOption(res, in, copyOpts); err != nil {
		return nil, errs.Wrap(err, "render payment intent")
	}
	return res, nil
}

type CheckoutResponse struct {
	Booking *BookingResponse       `json:"booking"`
	Payment *PaymentIntentResponse `json:"payment,omitempty"`
}

type PriceResponse struct {
	AdventureID    string `json:"adventure_id"`
	PricePerPerson string `json:"price_per_person"`
	Source         string `json:"source"`
}

type ConfirmationResponse struct {
	BookingID string `json:"booking_id,omitempty"`
	Reference string `json:"reference,omitempty"`
	// Status is confirmed, already_confirmed or unverified.
	Status  string `json:"status"`
	Message string `json:"message"`
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Action   string `json:"action"`
}
