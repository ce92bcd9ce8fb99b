package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanActFor(t *testing.T) {
	owner := uuid.New()

	self := Identity{UserID: owner, Role: RoleContractor}
	if !self.CanActFor(owner) {
		t.Fatalf("owner must act for themselves")
	}

	admin := Identity{UserID: uuid.New(), Role: RoleAdmin}
	if !admin.CanActFor(owner) {
		t.Fatalf("admin must act for anyone")
	}

	stranger := Identity{UserID: uuid.New(), Role: RoleClient}
	if stranger.CanActFor(owner) {
		t.Fatalf("stranger must not act for the owner")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleClient, RoleContractor, RoleAdmin} {
		if !ValidRole(r) {
			t.Fatalf("role %q must be valid", r)
		}
	}
	for _, r := range []string{"", "superuser", "Admin"} {
		if ValidRole(r) {
			t.Fatalf("role %q must be invalid", r)
		}
	}
}
