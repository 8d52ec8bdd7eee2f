package kernel

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Role is the platform role carried by an authenticated caller.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
	// RoleSystem is used by background jobs; it is never issued to a user.
	RoleSystem Role = "system"
)

// ParseRole accepts the role names issued in access tokens, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleClient, RoleProvider, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Party is the side of an order a participant is on.
type Party string

const (
	PartyNone      Party = ""
	PartyRequester Party = "requester"
	PartyProvider  Party = "provider"
)

// Counterparty returns the other side of the order.
func (p Party) Counterparty() Party {
	switch p {
	case PartyRequester:
		return PartyProvider
	case PartyProvider:
		return PartyRequester
	default:
		return PartyNone
	}
}

// ParseParty parses "requester" or "provider".
func ParseParty(s string) (Party, error) {
	switch p := Party(strings.ToLower(strings.TrimSpace(s))); p {
	case PartyRequester, PartyProvider:
		return p, nil
	default:
		return PartyNone, errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%q is not requester or provider", s))
	}
}

// Actor is the caller on whose behalf an operation runs.
type Actor struct {
	userID UUID
	role   Role
}

// NewActor builds an actor for an authenticated user.
func NewActor(userID UUID, role Role) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if role == "" {
		return Actor{}, errs.NewValueIsRequiredError("role")
	}
	return Actor{userID: userID, role: role}, nil
}

// SystemActor is the actor background jobs run as.
func SystemActor() Actor {
	return Actor{role: RoleSystem}
}

func (a Actor) UserID() UUID { return a.userID }
func (a Actor) Role() Role   { return a.role }

// IsPrivileged reports whether the actor bypasses participant checks.
func (a Actor) IsPrivileged() bool {
	return a.role == RoleAdmin || a.role == RoleSystem
}

func (a Actor) String() string {
	if a.role == RoleSystem {
		return string(RoleSystem)
	}
	return fmt.Sprintf("%s %s", a.role, a.userID)
}
