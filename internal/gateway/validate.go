package gateway

import (
	"regexp"
	"strconv"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 6

func validateSignUp(email, password, confirmPassword, displayName string) *ValidationError {
	fields := make(map[string]string)

	if displayName == "" {
		fields["display_name"] = "Name is required"
	}

	if email == "" {
		fields["email"] = "Email is required"
	} else if !emailRegex.MatchString(email) {
		fields["email"] = "Invalid email format"
	}

	if password == "" {
		fields["password"] = "Password is required"
	} else if len(password) < minPasswordLength {
		fields["password"] = "Password must be at least 6 characters"
	}

	if confirmPassword == "" {
		fields["confirm_password"] = "Please confirm your password"
	} else if password != confirmPassword {
		fields["confirm_password"] = "Passwords do not match"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateSignIn(email, password string) *ValidationError {
	fields := make(map[string]string)

	if email == "" {
		fields["email"] = "Email is required"
	} else if !emailRegex.MatchString(email) {
		fields["email"] = "Invalid email format"
	}

	if password == "" {
		fields["password"] = "Password is required"
	} else if len(password) < minPasswordLength {
		fields["password"] = "Password must be at least 6 characters"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateListName(name string) *ValidationError {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Fields: map[string]string{"name": "List name is required"}}
	}
	return nil
}

func validateItemName(name string) *ValidationError {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Fields: map[string]string{"name": "Please enter an item name"}}
	}
	return nil
}

// CoerceQuantity turns raw quantity input into a valid quantity. Non-numeric
// input and anything below 1 becomes 1.
func CoerceQuantity(raw string) int {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || q < 1 {
		return 1
	}
	return q
}
