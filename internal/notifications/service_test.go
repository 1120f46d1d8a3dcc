package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/okuyamiwatch/backend/pkg/db"
	"github.com/okuyamiwatch/backend/pkg/db/models"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	table := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name_id TEXT NOT NULL,
  title TEXT NOT NULL,
  body TEXT NOT NULL,
  read_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(table).Error)
	return conn
}

func seedNotification(t *testing.T, conn *gorm.DB, userID uuid.UUID, createdAt time.Time) *models.Notification {
	t.Helper()
	row := &models.Notification{
		UserID:    userID,
		NameID:    uuid.New(),
		Title:     "候補が見つかりました",
		Body:      "掲載内容を確認してください",
		CreatedAt: createdAt,
	}
	require.NoError(t, NewRepository(conn).Create(context.Background(), row))
	return row
}

func TestListReturnsCallerInboxNewestFirst(t *testing.T) {
	conn := setupNotificationsTestDB(t)
	svc, err := NewService(db.FromGorm(conn))
	require.NoError(t, err)
	callerID := uuid.New()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	oldest := seedNotification(t, conn, callerID, base)
	newest := seedNotification(t, conn, callerID, base.Add(time.Hour))
	seedNotification(t, conn, uuid.New(), base.Add(2*time.Hour))

	listed, err := svc.List(context.Background(), callerID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newest.ID, listed[0].ID)
	assert.Equal(t, oldest.ID, listed[1].ID)
	assert.Nil(t, listed[0].ReadAt)
}

func TestListEmptyInboxIsEmptySlice(t *testing.T) {
	conn := setupNotificationsTestDB(t)
	svc, err := NewService(db.FromGorm(conn))
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)
}

func TestMarkReadStampsTimestamp(t *testing.T) {
	conn := setupNotificationsTestDB(t)
	svc, err := NewService(db.FromGorm(conn))
	require.NoError(t, err)
	callerID := uuid.New()

	row := seedNotification(t, conn, callerID, time.Now().UTC())

	require.NoError(t, svc.MarkRead(context.Background(), callerID, row.ID))

	var stored models.Notification
	require.NoError(t, conn.First(&stored, "id = ?", row.ID).Error)
	assert.NotNil(t, stored.ReadAt)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	conn := setupNotificationsTestDB(t)
	svc, err := NewService(db.FromGorm(conn))
	require.NoError(t, err)
	callerID := uuid.New()

	row := seedNotification(t, conn, callerID, time.Now().UTC())

	require.NoError(t, svc.MarkRead(context.Background(), callerID, row.ID))

	var first models.Notification
	require.NoError(t, conn.First(&first, "id = ?", row.ID).Error)

	require.NoError(t, svc.MarkRead(context.Background(), callerID, row.ID))

	var second models.Notification
	require.NoError(t, conn.First(&second, "id = ?", row.ID).Error)
	require.NotNil(t, second.ReadAt)
	assert.True(t, second.ReadAt.Equal(*first.ReadAt))
}

func TestMarkReadForeignRowReportsNotFound(t *testing.T) {
	conn := setupNotificationsTestDB(t)
	svc, err := NewService(db.FromGorm(conn))
	require.NoError(t, err)

	row := seedNotification(t, conn, uuid.New(), time.Now().UTC())

	markErr := svc.MarkRead(context.Background(), uuid.New(), row.ID)
	require.Error(t, markErr)

	appErr := pkgerrors.As(markErr)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	var stored models.Notification
	require.NoError(t, conn.First(&stored, "id = ?", row.ID).Error)
	assert.Nil(t, stored.ReadAt)
}

func TestMarkReadMissingRowReportsNotFound(t *testing.T) {
	conn := setupNotificationsTestDB(t)
	svc, err := NewService(db.FromGorm(conn))
	require.NoError(t, err)

	err = svc.MarkRead(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
