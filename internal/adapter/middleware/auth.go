package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"po-workflow-backend/internal/domain/user"
)

const (
	actorContextKey = "actor"
	userCachePrefix = "authuser:"
)

// UserCache keeps resolved users in redis so the auth middleware does not
// hit MySQL on every request. Entries are JSON snapshots of user.User.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl}
}

func (uc *UserCache) Get(ctx context.Context, userID string) (*user.User, error) {
	v, err := uc.rdb.Get(ctx, userCachePrefix+userID).Bytes()
	if err != nil {
		return nil, err
	}
	var u user.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (uc *UserCache) Set(ctx context.Context, u *user.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return uc.rdb.Set(ctx, userCachePrefix+u.UserID, payload, uc.ttl).Err()
}

// Invalidate drops one cached user, called after role/active mutations.
func (uc *UserCache) Invalidate(ctx context.Context, userID string) error {
	return uc.rdb.Del(ctx, userCachePrefix+userID).Err()
}

// AuthMiddleware verifies the bearer JWT (HMAC, subject = user public id),
// resolves the actor through the cache with a MySQL fallback, rejects
// inactive users, and stores the actor on the echo context.
//
// Tokens are minted by an external identity service sharing JWT_SECRET;
// this service only ever verifies.
func AuthMiddleware(secret []byte, cache *UserCache, users user.Repository, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			ctx := c.Request().Context()
			u, err := cache.Get(ctx, claims.Subject)
			if err != nil {
				if !errors.Is(err, redis.Nil) {
					log.Warn("user cache read failed", zap.String("user_id", claims.Subject), zap.Error(err))
				}
				u, err = users.GetByUserID(ctx, claims.Subject)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown user"})
					}
					log.Error("user lookup failed", zap.String("user_id", claims.Subject), zap.Error(err))
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
				}
				if cerr := cache.Set(ctx, u); cerr != nil {
					log.Warn("user cache write failed", zap.String("user_id", u.UserID), zap.Error(cerr))
				}
			}

			if !u.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user inactive"})
			}

			c.Set(actorContextKey, u)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// SetActor stores the actor the way AuthMiddleware does, so handlers can
// be driven without the full auth chain.
func SetActor(c echo.Context, u *user.User) { c.Set(actorContextKey, u) }

// ActorFromContext returns the authenticated user stored by AuthMiddleware.
func ActorFromContext(c echo.Context) (*user.User, bool) {
	u, ok := c.Get(actorContextKey).(*user.User)
	return u, ok && u != nil
}
