package utils

import "fmt"

// Pluralize returns singular when count is 1, otherwise singular + "s"
func Pluralize(count int64, singular string) string {
	if count == 1 {
		return singular
	}
	return singular + "s"
}

// DiskLine formats a message line for a single disk
func DiskLine(index int, text string) string {
	return fmt.Sprintf("Disk %d: %s", index, text)
}

// ErrorCountLine formats a counter reading, e.g. "Disk 1: 5 errors"
func ErrorCountLine(index int, value int64) string {
	return DiskLine(index, fmt.Sprintf("%d %s", value, Pluralize(value, "error")))
}
