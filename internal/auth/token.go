package auth

import (
	"fmt"

	"github.com/google/uuid"
)

// NewSessionToken returns the opaque string handed to the client after a
// login. It is not signed and the server never checks it again.
func NewSessionToken(userID uint) string {
	return fmt.Sprintf("session_%d_%s", userID, uuid.NewString())
}
