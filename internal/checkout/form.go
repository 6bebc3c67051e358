package checkout

import (
	"regexp"

	"github.com/anitasharma/craftsbyanita/internal/models"
)

// ValidationError reports missing or malformed form fields. It blocks
// submission locally; nothing external is called and no checkout state
// changes.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "checkout form has missing or invalid fields"
}

// Basic email validation regex
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateForm checks every required checkout field. Notes is the only
// optional field.
func ValidateForm(form *models.CheckoutForm) *ValidationError {
	errors := make(map[string]string)
	if form.FirstName == "" {
		errors["first_name"] = "First name is required."
	}
	if form.LastName == "" {
		errors["last_name"] = "Last name is required."
	}
	if form.Email == "" {
		errors["email"] = "Email address is required."
	} else if !isValidEmail(form.Email) {
		errors["email"] = "Please enter a valid email address."
	}
	if form.Phone == "" {
		errors["phone"] = "Phone number is required."
	}
	if form.Street == "" {
		errors["street"] = "Street address is required."
	}
	if form.City == "" {
		errors["city"] = "City is required."
	}
	if form.State == "" {
		errors["state"] = "State is required."
	}
	if form.ZipCode == "" {
		errors["zip_code"] = "ZIP / postal code is required."
	}
	if form.Country == "" {
		errors["country"] = "Country is required."
	}

	if len(errors) > 0 {
		return &ValidationError{Fields: errors}
	}
	return nil
}
