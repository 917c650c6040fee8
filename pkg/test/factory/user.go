package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// NewUser builds a test user. Unless the caller supplies one, Password is
// filled with a bcrypt digest of "12345678".
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	hasPassword := false

	for _, data := range customData {
		if _, exists := data["Password"]; exists {
			hasPassword = true
			break
		}
	}

	if !hasPassword {
		encrypted, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)

		customData = append(customData, map[string]any{
			"Password": string(encrypted),
		})
	}

	return instance.Build(customData...)
}
