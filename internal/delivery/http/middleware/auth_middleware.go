package middleware

import (
	"net/http"
	"strings"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the JWT access token and places the authenticated
// actor on the request context. Everything downstream reads the typed actor
// instead of picking loose values off the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		actor := entity.Actor{
			UserID: claims.UserID,
			Roles:  entity.RolesFromStrings(claims.Roles),
		}

		// Expose the actor both on echo.Context and on the request's
		// context.Context for the use case layer.
		c.Set(string(deliverycontext.KeyActor), actor)
		ctx := deliverycontext.WithActor(c.Request().Context(), actor)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the actor has a specific
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRoles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromEcho(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			for _, role := range requiredRoles {
				if actor.Is(role) {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: insufficient role"})
		}
	}
}

// ActorFromEcho reads the authenticated actor placed by Authenticate.
func ActorFromEcho(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(string(deliverycontext.KeyActor)).(entity.Actor)

	return actor, ok
}
