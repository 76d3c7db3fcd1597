package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

// NotificationsKey is where the sweep stores its notifications for handlers
// to surface in their responses.
const NotificationsKey = "notifications"

// Reconciler promotes due assignments and reports what it promoted.
type Reconciler interface {
	Reconcile(ctx context.Context, now time.Time) ([]models.Notification, error)
}

// Dispatcher delivers sweep notifications out of band.
type Dispatcher interface {
	Dispatch(ctx context.Context, notifications []models.Notification)
}

// ReconcileSweep promotes due assignments before each authenticated request,
// mirroring the stored status with the wall clock. A sweep failure is logged
// but never blocks the request.
func ReconcileSweep(reconciler Reconciler, dispatcher Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, authenticated := c.Get("user_id"); !authenticated {
			c.Next()
			return
		}
		notifications, err := reconciler.Reconcile(c.Request.Context(), time.Now())
		if err != nil {
			log.Printf("[reconcile][sweep][err] %v", err)
			c.Next()
			return
		}
		if len(notifications) > 0 {
			c.Set(NotificationsKey, notifications)
			go dispatcher.Dispatch(context.Background(), notifications)
		}
		c.Next()
	}
}

// Notifications returns the sweep results stashed for this request.
func Notifications(c *gin.Context) []models.Notification {
	if v, ok := c.Get(NotificationsKey); ok {
		if n, ok := v.([]models.Notification); ok {
			return n
		}
	}
	return nil
}
