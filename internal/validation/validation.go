// Package validation contains input checks shared by the entity query
// services. Invalid input is a normal outcome for the query layer, so these
// helpers report booleans rather than errors.
package validation

const maxIntID = 1<<31 - 1

// ValidIntID reports whether id fits the signed INT columns used for ID
// fields in the Wait Wait Stats database (0 through 2147483647).
func ValidIntID(id int64) bool {
	return id >= 0 && id <= maxIntID
}

// ValidYear reports whether year is a plausible four digit show year.
func ValidYear(year int) bool {
	return year >= 1000 && year <= 9999
}

// ValidMonth reports whether month falls within 1 through 12.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
