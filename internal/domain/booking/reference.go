package booking

import (
	"github.com/lithammer/shortuuid/v3"
)

const ReferencePrefix = "BV-"

type ReferenceGenerator interface {
	NewReference() string
}

type ShortReferences struct{}

func (ShortReferences) NewReference() string {
	return ReferencePrefix + shortuuid.New()[:10]
}
