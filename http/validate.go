// server/http/validate.go
package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// failedTags returns the validation tags that failed, keyed by tag.
func failedTags(err error) map[string]bool {
	tags := map[string]bool{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			tags[e.Tag()] = true
		}
	}
	return tags
}
