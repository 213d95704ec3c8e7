package pricing

import (
	"context"
	"log/slog"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/pkg/errs"
)

var ErrAdventureNotFound = errs.New("adventure not found")

// CatalogReader is the live catalog. A miss is reported as infra.KindNotFound.
type CatalogReader interface {
	FindActivePrice(ctx context.Context, adventureID string) (adventure.PriceQuote, error)
}

type Resolver interface {
	Resolve(ctx context.Context, adventureID string) (adventure.PriceQuote, error)
}

type resolverImpl struct {
	live     CatalogReader
	fallback *adventure.Catalog
	logger   *slog.Logger
}

func NewResolver(live CatalogReader, fallback *adventure.Catalog, logger *slog.Logger) Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &resolverImpl{
		live:     live,
		fallback: fallback,
		logger:   logger,
	}
}

// Resolve prefers the live catalog and consults the static catalog on a miss
// or a lookup failure.
func (r *resolverImpl) Resolve(ctx context.Context, adventureID string) (adventure.PriceQuote, error) {
	id, err := adventure.NormalizeID(adventureID)
	if err != nil {
		return adventure.PriceQuote{}, errs.Mark(err, ErrAdventureNotFound)
	}

	quote, liveErr := r.live.FindActivePrice(ctx, id)
	if liveErr == nil {
		r.compareWithFallback(quote)
		return quote, nil
	}
	if !infra.IsKind(liveErr, infra.KindNotFound) {
		r.logger.Warn("Live catalog lookup failed, using static catalog",
			"adventure_id", id,
			"error", liveErr.Error())
	}

	quote, ok := r.lookupFallback(id)
	if !ok {
		return adventure.PriceQuote{}, errs.Wrapf(ErrAdventureNotFound, "adventure %q", id)
	}
	return quote, nil
}

func (r *resolverImpl) lookupFallback(id string) (adventure.PriceQuote, bool) {
	quote, found, err := r.staticQuote(id)
	if err != nil {
		r.logger.Error("Static catalog entry has an unusable price",
			"adventure_id", id,
			"error", err.Error())
		return adventure.PriceQuote{}, false
	}
	return quote, found
}

// staticQuote never logs; an unusable price is returned as an error.
func (r *resolverImpl) staticQuote(id string) (adventure.PriceQuote, bool, error) {
	if r.fallback == nil {
		return adventure.PriceQuote{}, false, nil
	}
	entry, ok := r.fallback.Lookup(id)
	if !ok {
		return adventure.PriceQuote{}, false, nil
	}

	price, err := entry.PricePerPerson()
	if err != nil {
		return adventure.PriceQuote{}, false, errs.Wrapf(err, "price %q", entry.Price)
	}
	if price.Cents() <= 0 {
		return adventure.PriceQuote{}, false, errs.Newf("price %q is not positive", entry.Price)
	}

	return adventure.PriceQuote{
		AdventureID:    id,
		PricePerPerson: price,
		Source:         adventure.SourceFallback,
	}, true, nil
}

// compareWithFallback only reports a disagreement; a broken static entry is
// reported when it is actually needed.
func (r *resolverImpl) compareWithFallback(live adventure.PriceQuote) {
	fb, ok, err := r.staticQuote(live.AdventureID)
	if err != nil || !ok || fb.PricePerPerson == live.PricePerPerson {
		return
	}
	r.logger.Debug("Live and static catalog prices disagree",
		"adventure_id", live.AdventureID,
		"live", live.PricePerPerson.String(),
		"static", fb.PricePerPerson.String())
}
