package core

import (
	"fmt"
	"time"
)

// ValidationError rejects a record because a required field is missing.
type ValidationError struct {
	Kind  UserType
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s signup: required field %q is missing", e.Kind, e.Field)
}

// Signup is implemented by both record kinds so stores can finalize them
// through Prepare.
type Signup interface {
	Validate() error
	stamp(id string, at time.Time)
}

// Prepare validates a record and stamps the store-assigned identity onto it.
// On a validation error the record is left untouched.
func Prepare(s Signup, id string, at time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.stamp(id, at)
	return nil
}

type requiredField struct {
	name    string
	present bool
}

func checkRequired(kind UserType, fields []requiredField) error {
	for _, f := range fields {
		if !f.present {
			return &ValidationError{Kind: kind, Field: f.name}
		}
	}
	return nil
}

// Validate enforces the business required-field set. Empty strings count
// as missing; surrounding whitespace does not.
func (b *BusinessSignup) Validate() error {
	return checkRequired(UserTypeBusiness, []requiredField{
		{"businessName", b.BusinessName != ""},
		{"email", b.Email != ""},
	})
}

func (b *BusinessSignup) stamp(id string, at time.Time) {
	b.ID = id
	b.UserType = string(UserTypeBusiness)
	if b.Timestamp.IsZero() {
		b.Timestamp = at
	}
}

// Validate enforces the provider required-field set. SpaceSize must be
// present; zero is a valid size.
func (p *ProviderSignup) Validate() error {
	return checkRequired(UserTypeProvider, []requiredField{
		{"name", p.Name != ""},
		{"email", p.Email != ""},
		{"phone", p.Phone != ""},
		{"address", p.Address != ""},
		{"spaceSize", p.SpaceSize != nil},
		{"spaceType", p.SpaceType != ""},
		{"availability", p.Availability != ""},
	})
}

func (p *ProviderSignup) stamp(id string, at time.Time) {
	p.ID = id
	p.UserType = string(UserTypeProvider)
	if p.Timestamp.IsZero() {
		p.Timestamp = at
	}
}
