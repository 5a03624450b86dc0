package registration

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	tagNotBlank      = "notblank"
	tagContactNumber = "contact_number"
	tagEmailShape    = "email_shape"
)

var (
	contactPattern = regexp.MustCompile(`^\+91\s\d{5}-\d{5}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits      = regexp.MustCompile(`\D`)
)

type rule struct {
	tags        string
	requiredMsg string
	invalidMsg  string
}

var rules = map[Field]rule{
	FieldStationName: {
		tags:        tagNotBlank,
		requiredMsg: "Police station name is required",
	},
	FieldOfficerName: {
		tags:        tagNotBlank,
		requiredMsg: "Officer-in-charge name is required",
	},
	FieldContactNumber: {
		tags:        tagNotBlank + "," + tagContactNumber,
		requiredMsg: "Contact number is required",
		invalidMsg:  "Please enter a valid contact number",
	},
	FieldEmail: {
		tags:        tagNotBlank + "," + tagEmailShape,
		requiredMsg: "Email address is required",
		invalidMsg:  "Please enter a valid email address",
	},
	FieldAddress: {
		tags:        tagNotBlank,
		requiredMsg: "Station address is required",
	},
	FieldCity: {
		tags:        tagNotBlank,
		requiredMsg: "City is required",
	},
	FieldDistrict: {
		tags:        tagNotBlank,
		requiredMsg: "District is required",
	},
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	mustRegister(v, tagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, tagContactNumber, func(fl validator.FieldLevel) bool {
		return ValidContactNumber(fl.Field().String())
	})
	mustRegister(v, tagEmailShape, func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn, true); err != nil {
		panic(fmt.Sprintf("registration: register %s: %v", tag, err))
	}
}

// Validate checks value against field's rule and returns the failure, or nil
// when the value passes. Unknown fields always pass; use ParseField at input
// boundaries. Validate has no side effects.
func Validate(field Field, value string) *FieldError {
	r, ok := rules[field]
	if !ok {
		return nil
	}

	err := validate.Var(value, r.tags)
	if err == nil {
		return nil
	}

	kind := KindRequired
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() != tagNotBlank {
		kind = KindInvalidFormat
	}

	msg := r.requiredMsg
	if kind == KindInvalidFormat {
		msg = r.invalidMsg
	}
	return &FieldError{Field: field, Kind: kind, Message: msg}
}

// ValidContactNumber accepts "+91 XXXXX-XXXXX" or any value that holds exactly
// ten digits once every non-digit is stripped.
func ValidContactNumber(value string) bool {
	if contactPattern.MatchString(value) {
		return true
	}
	return len(nonDigits.ReplaceAllString(value, "")) == 10
}

// ValidEmail accepts the local@domain.tld shape: a single "@", a "." somewhere
// after it and no whitespace anywhere in the raw value.
func ValidEmail(value string) bool {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return false
	}
	return emailPattern.MatchString(value)
}
