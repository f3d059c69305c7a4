package contextutils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsValidEmail checks if an email address is valid using go-playground/validator
func IsValidEmail(email string) bool {
	return validate.Var(email, "email") == nil
}

// NormalizeTopic strips the UI selection prefix from a request topic so stored
// topics match the canned question catalog.
func NormalizeTopic(topic string) string {
	const selectedPrefix = "Selected Topic: "
	if strings.HasPrefix(topic, selectedPrefix) {
		return strings.TrimPrefix(topic, selectedPrefix)
	}
	return topic
}
