package identity

import "github.com/google/uuid"

const (
	RoleClient     = "client"
	RoleContractor = "contractor"
	RoleAdmin      = "admin"
)

// Identity is the authenticated caller, resolved once by the auth middleware
// and passed explicitly into every domain call.
type Identity struct {
	UserID   uuid.UUID
	Role     string
	Username string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanActFor reports whether the identity may mutate a resource owned by
// ownerID: the owner themselves, or an admin.
func (i Identity) CanActFor(ownerID uuid.UUID) bool {
	return i.IsAdmin() || i.UserID == ownerID
}

func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleContractor, RoleAdmin:
		return true
	}
	return false
}
