package utils

import "strings"

// NormalizePlate upper-cases a plate number and collapses inner whitespace.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}
