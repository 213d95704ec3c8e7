package commands

import (
	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/pricing"
)

var (
	ErrValidation        = booking.ErrValidation
	ErrAdventureNotFound = pricing.ErrAdventureNotFound

	ErrPersistence                = errs.New("failed to persist booking")
	ErrPaymentProvider            = errs.New("payment provider failure")
	ErrReconciliation             = errs.New("payment reconciliation failed")
	ErrMalformedBookingID         = errs.New("malformed booking id")
	ErrNotFoundOrAlreadyConfirmed = errs.New("booking not found or no longer pending")
	ErrPaymentUnverified          = errs.New("payment not verified with the provider")
	ErrBookingNotFound            = errs.New("booking not found")
	ErrBookingNotPayable          = errs.New("booking is not payable")
	ErrIdempotencyMismatch        = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress      = errs.New("idempotency in progress")
)
