// Package validate holds the shared struct validator.
package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	v    *validator.Validate
	once sync.Once
)

// Validate returns the process-wide validator. It caches struct metadata, so
// one instance is shared.
func Validate() *validator.Validate {
	once.Do(func() {
		v = validator.New()
	})
	return v
}
