package utils

import (
	"math/rand"
)

// GenerateShareSlug generates a random share slug for a trip
func GenerateShareSlug() string {
	return generateRandomString(SlugCharset, SlugLength)
}

// generateRandomString generates a random string with given charset and length
func generateRandomString(charset string, length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
