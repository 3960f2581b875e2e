package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/events"
	"github.com/sharmaketan/shopkart/internal/logging"
	"github.com/sharmaketan/shopkart/internal/models"
)

const Topic = "audit_events"

type Recorder struct {
	DB       *gorm.DB
	Producer *events.Producer
}

// Record appends an audit entry and mirrors it to the audit_events topic.
// Both writes are best-effort: a failure is logged and never surfaced to
// the caller, so the primary response is unaffected.
func (r *Recorder) Record(c echo.Context, action string, metadata map[string]any) {
	if r == nil || r.DB == nil {
		return
	}

	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("component", "audit", "action", action)

	entry := r.buildEntry(c, action, metadata)

	if err := r.DB.Create(entry).Error; err != nil {
		l.Error("audit_write_failed", "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.Producer.PublishEvent(pubCtx, Topic, action, entry); err != nil {
		l.Error("audit_publish_failed", "error", err)
	}
}

func (r *Recorder) buildEntry(c echo.Context, action string, metadata map[string]any) *models.AuditLog {
	ua := c.Request().UserAgent()
	if ua == "" {
		ua = "unknown"
	}
	device, browser, osName := ClassifyUserAgent(ua)

	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}

	meta := "{}"
	if metadata != nil {
		if data, err := json.Marshal(metadata); err == nil {
			meta = string(data)
		}
	}

	var userID *uint
	if v, ok := c.Get("userID").(uint); ok && v != 0 {
		userID = &v
	}

	return &models.AuditLog{
		UserID:     userID,
		Action:     action,
		IP:         ip,
		UserAgent:  ua,
		DeviceType: device,
		Browser:    browser,
		OS:         osName,
		Country:    "unknown",
		City:       "unknown",
		Metadata:   meta,
		Timestamp:  time.Now().UTC(),
	}
}
