package utils

import "time"

// CommonDateLayout is the dd/MM/yyyy format used for date-of-birth inputs.
const CommonDateLayout = "02/01/2006"

// ParseCommonDate parses a dd/MM/yyyy string into a time.
func ParseCommonDate(value string) (time.Time, error) {
	return time.Parse(CommonDateLayout, value)
}
