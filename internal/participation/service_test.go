package participation

import (
	"context"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/internal/activity"
	"github.com/handson-platform/handson-backend/internal/apperror"
	"github.com/handson-platform/handson-backend/internal/event"
	"github.com/handson-platform/handson-backend/internal/profile"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Participant{}, &event.Event{}, &profile.Profile{}, &activity.Activity{},
	))

	activitySvc := activity.NewService(activity.NewRepository(db), zap.NewNop())
	return NewService(NewRepository(db), activitySvc, zap.NewNop())
}

func seedEvent(t *testing.T, svc *Service, creatorID string) *event.Event {
	t.Helper()
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	e := &event.Event{
		CreatorID:   creatorID,
		Title:       "Beach Cleanup",
		Description: "d",
		StartDate:   &start,
	}
	require.NoError(t, svc.Repo.DB.Create(e).Error)
	return e
}

func TestRegisterMissingEvent(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Register(context.Background(), "missing-event", Actor{UserID: "vol-1"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRegisterFirstTime(t *testing.T) {
	svc := newTestService(t)
	e := seedEvent(t, svc, "creator-1")

	row, isNew, err := svc.Register(context.Background(), e.ID, Actor{UserID: "vol-1", Name: "Vol"})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, StatusRegistered, row.Status)
	assert.Equal(t, "vol-1", row.UserID)
}

func TestRegisterIdempotentRepeat(t *testing.T) {
	svc := newTestService(t)
	e := seedEvent(t, svc, "creator-1")

	first, isNew, err := svc.Register(context.Background(), e.ID, Actor{UserID: "vol-1"})
	require.NoError(t, err)
	require.True(t, isNew)

	second, isNew, err := svc.Register(context.Background(), e.ID, Actor{UserID: "vol-1"})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&Participant{}).Where("event_id = ?", e.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCancelThenReactivateReusesRow(t *testing.T) {
	svc := newTestService(t)
	e := seedEvent(t, svc, "creator-1")
	actor := Actor{UserID: "vol-1"}

	first, _, err := svc.Register(context.Background(), e.ID, actor)
	require.NoError(t, err)

	canceled, err := svc.Cancel(context.Background(), e.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, canceled.Status)

	reactivated, isNew, err := svc.Register(context.Background(), e.ID, actor)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, first.ID, reactivated.ID)
	assert.Equal(t, StatusRegistered, reactivated.Status)
}

func TestCancelWithoutRegistration(t *testing.T) {
	svc := newTestService(t)
	e := seedEvent(t, svc, "creator-1")

	_, err := svc.Cancel(context.Background(), e.ID, Actor{UserID: "vol-1"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	svc := newTestService(t)
	e := seedEvent(t, svc, "creator-1")
	actor := Actor{UserID: "vol-1"}

	_, _, err := svc.Register(context.Background(), e.ID, actor)
	require.NoError(t, err)

	first, err := svc.Cancel(context.Background(), e.ID, actor)
	require.NoError(t, err)

	second, err := svc.Cancel(context.Background(), e.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, StatusCanceled, second.Status)
}

func TestStatus(t *testing.T) {
	svc := newTestService(t)
	e := seedEvent(t, svc, "creator-1")
	actor := Actor{UserID: "vol-1"}

	registered, err := svc.Status(e.ID, actor.UserID)
	require.NoError(t, err)
	assert.False(t, registered)

	_, _, err = svc.Register(context.Background(), e.ID, actor)
	require.NoError(t, err)

	registered, err = svc.Status(e.ID, actor.UserID)
	require.NoError(t, err)
	assert.True(t, registered)

	_, err = svc.Cancel(context.Background(), e.ID, actor)
	require.NoError(t, err)

	registered, err = svc.Status(e.ID, actor.UserID)
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestListUserEvents(t *testing.T) {
	svc := newTestService(t)
	e1 := seedEvent(t, svc, "creator-1")
	e2 := seedEvent(t, svc, "creator-1")
	actor := Actor{UserID: "vol-1"}

	_, _, err := svc.Register(context.Background(), e1.ID, actor)
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), e2.ID, actor)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), e2.ID, actor)
	require.NoError(t, err)

	all, err := svc.ListUserEvents(actor.UserID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListUserEvents(actor.UserID, StatusRegistered)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, e1.ID, active[0].EventID)

	_, err = svc.ListUserEvents(actor.UserID, "pending")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestRegisterRecordsActivity(t *testing.T) {
	svc := newTestService(t)
	e := seedEvent(t, svc, "creator-1")

	_, _, err := svc.Register(context.Background(), e.ID, Actor{UserID: "vol-1", Name: "Vol"})
	require.NoError(t, err)

	var rows []activity.Activity
	require.NoError(t, svc.Repo.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, activity.TypeEventRegistered, rows[0].Type)
	assert.Equal(t, "vol-1", rows[0].UserID)
	assert.Equal(t, e.ID, rows[0].ResourceID)
}
