package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

const actorHeader = "X-Actor-ID"

// ActorMiddleware resolves the authenticated actor from the X-Actor-ID
// header against the user directory. Authentication itself lives upstream;
// by the time a request reaches this service the header is trusted.
func ActorMiddleware(users ports.UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		actorID, err := strconv.ParseUint(c.GetHeader(actorHeader), 10, 64)
		if err != nil || actorID == 0 {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		user, err := users.Lookup(c.Request.Context(), actorID)
		if err != nil || !user.Active {
			if err != nil {
				zap.L().Warn("actor lookup failed", zap.Uint64("actor_id", actorID), zap.Error(err))
			}
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		c.Set("actor", domain.Actor{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

func GetActor(c *gin.Context) (domain.Actor, bool) {
	value, exists := c.Get("actor")
	if !exists {
		return domain.Actor{}, false
	}
	actor, ok := value.(domain.Actor)
	return actor, ok
}
