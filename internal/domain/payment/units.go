package payment

import (
	"errors"
	"strings"

	"belizevibes-booking/internal/domain/money"
)

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrFractionalAmount    = errors.New("amount has a fraction the currency cannot express")
)

// ISO 4217 currencies whose minor unit is not the cent.
var (
	zeroDecimal = map[string]struct{}{
		"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {}, "KRW": {}, "MGA": {},
		"PYG": {}, "RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
	}
	threeDecimal = map[string]struct{}{
		"BHD": {}, "JOD": {}, "KWD": {}, "OMR": {}, "TND": {},
	}
)

// Exponent reports the number of decimal places of the currency's minor unit.
func Exponent(currency string) (int, error) {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if len(c) != 3 {
		return 0, ErrUnsupportedCurrency
	}
	if _, ok := zeroDecimal[c]; ok {
		return 0, nil
	}
	if _, ok := threeDecimal[c]; ok {
		return 3, nil
	}
	return 2, nil
}

// ToMinorUnits converts an amount held in hundredths into the provider's
// smallest unit of currency. USD 200.00 becomes 20000.
func ToMinorUnits(amount money.Money, currency string) (int64, error) {
	if amount.Cents() <= 0 {
		return 0, ErrInvalidAmount
	}
	exp, err := Exponent(currency)
	if err != nil {
		return 0, err
	}
	switch exp {
	case 0:
		if amount.Cents()%100 != 0 {
			return 0, ErrFractionalAmount
		}
		return amount.Cents() / 100, nil
	case 3:
		return amount.Cents() * 10, nil
	default:
		return amount.Cents(), nil
	}
}
