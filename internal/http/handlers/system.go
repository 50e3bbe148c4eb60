package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	intconfig "smartparking/internal/config"
	"smartparking/internal/db"
	"smartparking/internal/repositories"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "smart parking backend is running"})
}

// DBCheck reports whether the MySQL ledger is reachable and migrated. With
// the memory store there is no database to check.
func DBCheck(c *gin.Context) {
	conn := intconfig.DB
	if conn == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not connected", "code": "db_unavailable"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := intconfig.EnsureDB(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database ping failed: " + err.Error(), "code": "db_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "database connection OK",
		"table":       repositories.BookingsTable,
		"table_ready": db.HasTable(ctx, conn, repositories.BookingsTable),
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path, "handler": rt.Handler})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
