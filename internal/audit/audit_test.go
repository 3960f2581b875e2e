package audit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func testContext(ua string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestRecord_WritesEntry(t *testing.T) {
	db := newTestDB(t)
	r := &Recorder{DB: db}

	c := testContext("Mozilla/5.0 (Windows NT 10.0) Chrome/124.0 Safari/537.36")
	c.Set("userID", uint(42))

	r.Record(c, ActionLogin, map[string]any{"username": "alice"})

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)

	assert.Equal(t, ActionLogin, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, uint(42), *entry.UserID)
	assert.Equal(t, "Chrome", entry.Browser)
	assert.Equal(t, "Windows", entry.OS)
	assert.Equal(t, "desktop", entry.DeviceType)
	assert.JSONEq(t, `{"username":"alice"}`, entry.Metadata)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestRecord_AnonymousAndNilMetadata(t *testing.T) {
	db := newTestDB(t)
	r := &Recorder{DB: db}

	r.Record(testContext(""), ActionLoginFailed, nil)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)

	assert.Nil(t, entry.UserID)
	assert.Equal(t, "unknown", entry.UserAgent)
	assert.Equal(t, "{}", entry.Metadata)
}

func TestRecord_NilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	// Must not panic.
	r.Record(testContext(""), ActionLogin, nil)
}
