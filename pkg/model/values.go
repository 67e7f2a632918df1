package model

import (
	"regexp"
	"time"
)

// DateLayout is the layout used when dates are entered or displayed as text.
const DateLayout = "2006-01-02"

// DefaultPhoneCode is the dialling code preselected for phone fields.
const DefaultPhoneCode = "+1"

// Phone is the value stored for phone fields.
type Phone struct {
	Code   string `json:"code" yaml:"code"`
	Number string `json:"number" yaml:"number"`
}

// FileRef references a file picked by the user. The builder only holds the
// reference; reading or storing the file is up to the caller.
type FileRef struct {
	Name        string    `json:"name" yaml:"name"`
	Size        int64     `json:"size,omitempty" yaml:"size,omitempty"`
	ContentType string    `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Path        string    `json:"path,omitempty" yaml:"path,omitempty"`
	ModifiedAt  time.Time `json:"modifiedAt,omitempty" yaml:"modifiedAt,omitempty"`
}

// CountryCode describes a dialling code offered by phone fields.
type CountryCode struct {
	Code    string `json:"code"`
	Country string `json:"country"`
	Format  string `json:"format"`
}

var phoneCountryCodes = []CountryCode{
	{Code: "+1", Country: "US", Format: "(XXX) XXX-XXXX"},
	{Code: "+44", Country: "UK", Format: "XXXX XXX XXX"},
	{Code: "+61", Country: "AU", Format: "XXXX XXX XXX"},
	{Code: "+33", Country: "FR", Format: "X XX XX XX XX"},
	{Code: "+49", Country: "DE", Format: "XXXX XXXXXXX"},
	{Code: "+81", Country: "JP", Format: "XX XXXX XXXX"},
	{Code: "+86", Country: "CN", Format: "XXX XXXX XXXX"},
}

// PhoneCountryCodes returns the dialling codes offered by phone fields.
func PhoneCountryCodes() []CountryCode {
	return append([]CountryCode(nil), phoneCountryCodes...)
}

// LookupCountryCode finds the entry for a dialling code.
func LookupCountryCode(code string) (CountryCode, bool) {
	for _, entry := range phoneCountryCodes {
		if entry.Code == code {
			return entry, true
		}
	}
	return CountryCode{}, false
}

var phoneNumberPattern = regexp.MustCompile(`^[0-9\s()\-]*$`)

// ValidPhoneNumber reports whether number only contains digits, spaces,
// parentheses and dashes. Input widgets reject keystrokes that fail it.
func ValidPhoneNumber(number string) bool {
	return phoneNumberPattern.MatchString(number)
}
