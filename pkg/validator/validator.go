package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Init builds the shared validator instance. Safe to call repeatedly.
func Init() {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
}

// Struct validates an outbound form against its validate tags.
func Struct(s interface{}) error {
	Init()
	return validate.Struct(s)
}
