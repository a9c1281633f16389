package services

import (
	"regexp"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

var (
	nameRe   = regexp.MustCompile(`^[A-Za-z\s'0-9-]+$`)
	numberRe = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateName checks both name fields against the allowed character set:
// letters, digits, whitespace, apostrophe and hyphen.
func ValidateName(firstName, lastName string) error {
	if !nameRe.MatchString(firstName) || !nameRe.MatchString(lastName) {
		return common.ErrNameSpecialCharacters
	}
	return nil
}

// ValidateNumbers fails on the first value that is not digits only.
func ValidateNumbers(numbers ...string) error {
	for _, n := range numbers {
		if !numberRe.MatchString(n) {
			return common.ErrNumberNotNumeric
		}
	}
	return nil
}
