package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"toodoo/internal/core/auth"
	"toodoo/internal/transport/http/handler"
	mdw "toodoo/internal/transport/http/middleware"
)

// NewAPIEngine builds the engine with the shared middleware chain and
// mounts all routes. Paths live at the root to stay wire-compatible with
// the original clients.
func NewAPIEngine(
	l *zap.Logger,
	jwter *auth.JWTer,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	taskH *handler.TaskHandler,
	collabH *handler.CollabHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public: signup, login, password reset.
	authH.Mount(r)

	// Everything else needs a verified subject.
	authed := r.Group("", mdw.AuthJWT(jwter))
	userH.Mount(authed)
	taskH.Mount(authed)
	collabH.Mount(authed)

	return r
}
