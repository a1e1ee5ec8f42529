package service

import (
	"nakliye/internal/token"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID    uuid.UUID
	Role      string
	CompanyID *uuid.UUID
}

// ActorFromClaims builds an Actor from verified token claims.
func ActorFromClaims(c *token.Claims) (Actor, error) {
	uid, err := parseID(c.UserID())
	if err != nil {
		return Actor{}, err
	}
	a := Actor{UserID: uid, Role: c.Role}
	if c.CompanyID != "" {
		cid, err := parseID(c.CompanyID)
		if err != nil {
			return Actor{}, err
		}
		a.CompanyID = &cid
	}
	return a, nil
}

func (a Actor) IsAdmin() bool { return a.Role == token.RoleAdmin }

// userRef is the nullable audit reference of the actor.
func (a Actor) userRef() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}

func (a Actor) ownsCompany(id uuid.UUID) bool {
	return a.CompanyID != nil && *a.CompanyID == id
}
