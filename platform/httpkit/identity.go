package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const anonymousActor = "anonymous"

// Identity is the authenticated caller as established by AuthRequired.
type Identity struct {
	// Subject is the JWT sub claim; it is the actor written to the audit trail.
	Subject string
	// Name is the optional display name claim.
	Name string
}

// GetIdentity returns the caller, or false when the request was not
// authenticated.
func GetIdentity(c *gin.Context) (*Identity, bool) {
	subject := c.GetString(ContextActorKey)
	if subject == "" {
		return nil, false
	}
	return &Identity{Subject: subject, Name: c.GetString(ContextActorNameKey)}, true
}

// MustGetIdentity returns the caller or aborts with 401 and returns nil.
func MustGetIdentity(c *gin.Context) *Identity {
	id, ok := GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return id
}

// ActorID returns the actor recorded in audit entries.
func ActorID(id *Identity) string {
	if id == nil || id.Subject == "" {
		return anonymousActor
	}
	return id.Subject
}
