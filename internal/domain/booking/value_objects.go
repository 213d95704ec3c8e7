package booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"belizevibes-booking/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day meaning. It is held as UTC midnight.
type Date struct {
	t time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errs.Mark(ErrInvalidDate, ErrValidation)
	}
	return Date{t: t}, nil
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) String() string     { return d.t.Format(DateLayout) }

type Email string

var validate = validator.New()

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,email"); err != nil {
		return "", errs.Mark(ErrInvalidEmail, ErrValidation)
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

type Travelers int

func NewTravelers(n int) (Travelers, error) {
	if n < 1 {
		return 0, errs.Mark(ErrInvalidTravelers, ErrValidation)
	}
	return Travelers(n), nil
}

func (t Travelers) Int() int { return int(t) }

func boundedText(s string, limit int, tooLong error) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > limit {
		return "", errs.Mark(tooLong, ErrValidation)
	}
	return s, nil
}
