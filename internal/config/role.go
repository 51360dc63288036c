package config

// Role determines how the connection is obtained
type Role string

const (
	// RoleClient connects out to a remote host
	RoleClient Role = "client"

	// RoleServer listens for a single inbound connection
	RoleServer Role = "server"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleServer
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// Peer returns the role of the other end of the connection
func (r Role) Peer() Role {
	if r == RoleServer {
		return RoleClient
	}
	return RoleServer
}
