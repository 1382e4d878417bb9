package wallet

import (
	"strings"

	"github.com/iov-one/custody"
)

// Roles is the set of roles an identity holds in a wallet. An identity can
// be both an admin and the owner.
type Roles uint8

const (
	// RoleAdmin is held by committee members. Admins vote on proposals.
	RoleAdmin Roles = 1 << iota
	// RoleOwner is held by the wallet owner. The owner creates proposals
	// and transfers directly.
	RoleOwner

	// RoleNone is held by everyone else.
	RoleNone Roles = 0
)

// IsAdmin returns true if the admin role is held.
func (r Roles) IsAdmin() bool {
	return r&RoleAdmin != 0
}

// IsOwner returns true if the owner role is held.
func (r Roles) IsOwner() bool {
	return r&RoleOwner != 0
}

func (r Roles) String() string {
	var names []string
	if r.IsAdmin() {
		names = append(names, "admin")
	}
	if r.IsOwner() {
		names = append(names, "owner")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// roleOf checks membership using exact address equality.
func roleOf(conf *Config, owner, who custody.Address) Roles {
	var r Roles
	if custody.AddressSet(conf.Admins).Contains(who) {
		r |= RoleAdmin
	}
	if len(who) != 0 && owner.Equals(who) {
		r |= RoleOwner
	}
	return r
}
