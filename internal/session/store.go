package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/models"

	"github.com/google/uuid"
)

// Data is the server-side session payload. Exactly what the login flow
// establishes, nothing more: identity, role for routing, names for the UI.
type Data struct {
	AccountID uuid.UUID   `json:"account_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	IssuedAt  time.Time   `json:"issued_at"`
}

// Store correlates opaque session ids with authenticated account state.
// Expiry is the store's concern; Create never reuses an id.
type Store interface {
	Create(ctx context.Context, data Data) (string, error)
	Get(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error
	SweepAccountIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}

// newSessionID generates a cryptographically secure random session id.
func newSessionID() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}
