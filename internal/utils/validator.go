package utils

import "regexp"

// ValidateUsername checks if the username meets the requirements.
func ValidateUsername(username string) (bool, string) {
	// lowercase letters, digits and underscore only; usernames are stored lowercase
	if matched, _ := regexp.MatchString(`^[a-z0-9_]+$`, username); !matched {
		return false, "username may only contain lowercase letters, digits and underscores"
	}

	if matched, _ := regexp.MatchString(`^[0-9]+$`, username); matched {
		return false, "username cannot be digits only"
	}

	return true, ""
}

// ValidatePassword checks if the password meets the requirements.
// Returns true if valid, otherwise false and an error message.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "password must be at least 8 characters"
	}

	if matched, _ := regexp.MatchString(`^[a-zA-Z0-9[:punct:]]+$`, password); !matched {
		return false, "password may only contain letters, digits and symbols"
	}

	hasLetter, _ := regexp.MatchString(`[a-zA-Z]`, password)
	hasNum, _ := regexp.MatchString(`[0-9]`, password)
	if !hasLetter || !hasNum {
		return false, "password must contain at least one letter and one digit"
	}

	return true, ""
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the rough shape of an email address.
func ValidateEmail(email string) (bool, string) {
	if len(email) > 255 {
		return false, "email is too long"
	}
	if !emailPattern.MatchString(email) {
		return false, "email address is not valid"
	}
	return true, ""
}
