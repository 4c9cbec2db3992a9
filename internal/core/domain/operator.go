// internal/core/domain/operator.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Operator is a back-office user. The password hash never leaves the server.
type Operator struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate performs domain validation on the operator
func (o *Operator) Validate() error {
	if o.Email == "" {
		return fmt.Errorf("email is required")
	}
	if o.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}
