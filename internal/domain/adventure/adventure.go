package adventure

import (
	"errors"
	"strings"

	"belizevibes-booking/internal/domain/money"
)

var ErrEmptyID = errors.New("adventure id is required")

type Source string

const (
	SourceCatalog  Source = "catalog"
	SourceFallback Source = "fallback"
)

// PriceQuote is recomputed per booking attempt and never persisted.
type PriceQuote struct {
	AdventureID    string
	PricePerPerson money.Money
	Source         Source
}

func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return id, nil
}
