package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// ValidatorImpl implements domain.PhoneValidator using libphonenumber
// metadata. Numbers without a country prefix are parsed against the
// configured default region, so local input like 08012345678 canonicalizes
// to +2348012345678 when the region is NG.
type ValidatorImpl struct {
	defaultRegion string
}

// NewValidator creates a new phone validator
func NewValidator(defaultRegion string) domain.PhoneValidator {
	return &ValidatorImpl{defaultRegion: defaultRegion}
}

// Validate implements domain.PhoneValidator. Unparseable or implausible
// input yields IsValid=false rather than an error; the error return is
// reserved for lookups against external services.
func (v *ValidatorImpl) Validate(raw string) (*domain.PhoneValidation, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &domain.PhoneValidation{}, nil
	}

	num, err := phonenumbers.Parse(trimmed, v.defaultRegion)
	if err != nil {
		return &domain.PhoneValidation{}, nil
	}
	if !phonenumbers.IsValidNumber(num) {
		return &domain.PhoneValidation{}, nil
	}

	return &domain.PhoneValidation{
		IsValid:         true,
		FormattedNumber: phonenumbers.Format(num, phonenumbers.E164),
	}, nil
}
