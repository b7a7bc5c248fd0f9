package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrValidation wraps every input rejected at the record boundary.
var ErrValidation = errors.New("validation failed")

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxAccountCodeLength = 20
	MaxAmount            = "1000000000000" // 1 trillion
	// MaxAmountPlaces matches the NUMERIC(20, 4) money columns.
	MaxAmountPlaces = 4
)

var (
	accountCodeRegex = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.\-]*$`)
	slugRegex        = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]*$`)
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one rejected field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// ValidationError lists every rejected field of one input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Param != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", f.Field, f.Rule, f.Param))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", f.Field, f.Rule))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Decimals are compared as numbers by gte/lte/gt rules.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
			code := fl.Field().String()
			return len(code) <= MaxAccountCodeLength && accountCodeRegex.MatchString(code)
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			return AccountType(fl.Field().String()).Valid()
		})

		validate = v
	})
	return validate
}

// Validate checks s against its `validate` struct tags.
func Validate(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// ValidateAmount checks a monetary input: non-negative, at most
// MaxAmountPlaces decimal places and below MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}

	// Trailing zeros are fine; only digits storage would round away are refused.
	if !amount.Equal(amount.Truncate(MaxAmountPlaces)) {
		return fmt.Errorf("%w: amount has more than %d decimal places", ErrValidation, MaxAmountPlaces)
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrValidation, MaxAmount)
	}

	return nil
}

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, MaxAccountNameLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
