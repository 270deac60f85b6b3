package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session claims issued by the identity provider.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthConfig configures credential lookup and verification.
type AuthConfig struct {
	JWTSecret  string
	JWTIssuer  string
	CookieName string
}

// AuthMiddleware creates a Gin middleware handler that validates the session
// token, then asks identity whether the subject may act.
func AuthMiddleware(cfg AuthConfig, identity portssvc.IdentitySvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := extractToken(c, cfg.CookieName)
		if !ok {
			logger.Warn("Session credential missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required", "kind": "unauthorized"})
			return
		}

		parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if cfg.JWTIssuer != "" {
			parserOpts = append(parserOpts, jwt.WithIssuer(cfg.JWTIssuer))
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}, parserOpts...)
		if err != nil || !token.Valid {
			logger.Warn("Invalid token", slog.Any("error", err))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "kind": "unauthorized"})
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims", "kind": "unauthorized"})
			return
		}

		user, err := identity.Authenticate(c.Request.Context(), claims.Subject)
		if err != nil {
			status := apperrors.HTTPStatus(err)
			if status == http.StatusInternalServerError {
				logger.Error("Failed to load session user", slog.String("user_id", claims.Subject), slog.String("error", err.Error()))
			} else {
				logger.Warn("Session user rejected", slog.String("user_id", claims.Subject), slog.String("error", err.Error()))
			}
			c.AbortWithStatusJSON(status, gin.H{"error": apperrors.Message(err), "kind": apperrors.Kind(err)})
			return
		}

		// The stored role wins over the token claim so a demoted user loses
		// admin rights before the token expires.
		role := user.Role
		if role == "" {
			role = domain.Role(claims.Role)
		}
		actor := domain.Actor{UserID: user.UserID, Role: role}

		enrichedLogger := logger.With(slog.String("user_id", actor.UserID))
		ctx := WithActor(c.Request.Context(), actor)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(actorKey), actor)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

// extractToken reads the bearer header first and falls back to the session cookie.
func extractToken(c *gin.Context, cookieName string) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookieName == "" {
		return "", false
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}
