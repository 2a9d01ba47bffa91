package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal fields.
// Decimals are validated through their string form, so the dpos and dnonneg
// rules see a string field.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("dpos", decimalPositive)
		_ = v.RegisterValidation("dnonneg", decimalNonNegative)
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseDecimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// decimalPositive validates that a decimal is strictly greater than zero.
func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && d.IsPositive()
}

// decimalNonNegative validates that a decimal is zero or more.
func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && !d.IsNegative()
}
