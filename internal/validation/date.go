package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultDateLayout is the calendar date format expected in input files.
const DefaultDateLayout = "2006-01-02"

var validate = validator.New()

// IsValidDate reports whether text is exactly a calendar date in layout.
// An empty layout means DefaultDateLayout.
func IsValidDate(text, layout string) bool {
	if layout == "" {
		layout = DefaultDateLayout
	}
	// validator tags are split on these, so such layouts go straight to time.Parse.
	if strings.ContainsAny(layout, ",|=") {
		if text == "" {
			return false
		}
		_, err := time.Parse(layout, text)
		return err == nil
	}
	return validate.Var(text, "required,datetime="+layout) == nil
}
