package booking

import (
	"errors"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

const (
	MaxSpecialRequestsLength = 2000
	MaxTravelerNameLength    = 200
	MaxPhoneLength           = 40
)

// ErrValidation marks every input rule violation below.
var ErrValidation = errors.New("booking validation failed")

var (
	ErrInvalidTravelers       = errors.New("number of travelers must be at least 1")
	ErrInvalidEmail           = errors.New("email is missing or malformed")
	ErrInvalidDate            = errors.New("booking date must be a calendar date in YYYY-MM-DD form")
	ErrDateInPast             = errors.New("booking date is in the past")
	ErrTravelerNameTooLong    = errors.New("traveler name is too long")
	ErrPhoneTooLong           = errors.New("phone is too long")
	ErrSpecialRequestsTooLong = errors.New("special requests are too long")
	ErrQuoteMismatch          = errors.New("price quote belongs to a different adventure")
	ErrInvalidPrice           = errors.New("price per person must be positive")
	ErrTotalOverflow          = errors.New("total amount is out of range")
)

var (
	ErrAlreadyConfirmed  = errors.New("booking is already confirmed")
	ErrInvalidTransition = errors.New("invalid booking state transition")
)
