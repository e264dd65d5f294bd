package handlers

import (
	"net/http"
	"strings"

	"garagehub/internal/domain/entities"
	"garagehub/pkg"

	"github.com/gin-gonic/gin"
)

const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

var errMissingActor = pkg.NewDomainErrorSimple("INVALID_ACTOR", "X-Actor-ID and X-Actor-Role headers are required", http.StatusBadRequest)

// actorFromHeaders resolves the caller identity placed by the upstream auth
// layer. Handlers abort with 400 when the headers are absent or malformed.
func actorFromHeaders(c *gin.Context) (entities.Actor, bool) {
	actor := entities.Actor{
		ID:   strings.TrimSpace(c.GetHeader(headerActorID)),
		Role: entities.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(headerActorRole)))),
	}
	if actor.ID == "" || !actor.Role.Valid() {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return entities.Actor{}, false
	}
	return actor, true
}
