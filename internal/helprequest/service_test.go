package helprequest

import (
	"context"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/internal/activity"
	"github.com/handson-platform/handson-backend/internal/apperror"
	"github.com/handson-platform/handson-backend/internal/profile"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&HelpRequest{}, &Helper{}, &Comment{}, &profile.Profile{}, &activity.Activity{},
	))

	profileSvc := profile.NewService(profile.NewRepository(db), zap.NewNop())
	activitySvc := activity.NewService(activity.NewRepository(db), zap.NewNop())
	return NewService(NewRepository(db), profileSvc, activitySvc, zap.NewNop())
}

func seedRequest(t *testing.T, svc *Service, creatorID string) *HelpRequest {
	t.Helper()
	h, err := svc.Create(creatorID, &CreateHelpRequestRequest{
		Title:       "Need winter clothes",
		Description: "Collecting jackets for street families",
		Urgency:     UrgencyHigh,
	})
	require.NoError(t, err)
	return h
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	svc := newTestService(t)

	h, err := svc.Create("creator-1", &CreateHelpRequestRequest{
		Title:       "Tutoring needed",
		Description: "Math help for grade 8",
	})
	require.NoError(t, err)
	assert.Equal(t, UrgencyMedium, h.Urgency)
	assert.Equal(t, StatusOpen, h.Status)

	_, err = svc.Create("creator-1", &CreateHelpRequestRequest{Title: "", Description: "d"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Create("creator-1", &CreateHelpRequestRequest{
		Title: "t", Description: "d", Urgency: "critical",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestListValidatesFilters(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.List(ListFilters{Urgency: "urgent"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.List(ListFilters{Status: "closed"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestListFiltersByUrgencyAndStatus(t *testing.T) {
	svc := newTestService(t)
	seedRequest(t, svc, "creator-1")

	_, err := svc.Create("creator-1", &CreateHelpRequestRequest{
		Title: "Low priority", Description: "d", Urgency: UrgencyLow,
	})
	require.NoError(t, err)

	high, err := svc.List(ListFilters{Urgency: UrgencyHigh})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Need winter clothes", high[0].Title)

	open, err := svc.List(ListFilters{Status: StatusOpen})
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestUpdateCreatorOnly(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")

	title := "Hijacked"
	_, err := svc.Update(h.ID, "someone-else", &UpdateHelpRequestRequest{Title: &title})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	status := StatusResolved
	updated, err := svc.Update(h.ID, "creator-1", &UpdateHelpRequestRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, updated.Status)
}

func TestDeleteRemovesHelpersAndComments(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")
	actor := Actor{UserID: "helper-1", Name: "Helper", Email: "helper@example.com"}

	_, _, err := svc.OfferHelp(context.Background(), h.ID, actor, &OfferHelpRequest{Message: "I can help"})
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), h.ID, actor, &AddCommentRequest{Content: "On my way"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(h.ID, "not-creator"), apperror.ErrForbidden)
	require.NoError(t, svc.Delete(h.ID, "creator-1"))

	var helpers, comments int64
	require.NoError(t, svc.Repo.DB.Model(&Helper{}).Where("help_request_id = ?", h.ID).Count(&helpers).Error)
	require.NoError(t, svc.Repo.DB.Model(&Comment{}).Where("help_request_id = ?", h.ID).Count(&comments).Error)
	assert.Zero(t, helpers)
	assert.Zero(t, comments)
}

func TestOfferHelpFlipsOpenToInProgress(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")

	row, isNew, err := svc.OfferHelp(context.Background(), h.ID,
		Actor{UserID: "helper-1", Name: "Helper", Email: "helper@example.com"},
		&OfferHelpRequest{Message: "count me in"})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "count me in", row.Message)

	got, err := svc.GetByID(h.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)
	assert.Equal(t, 1, got.HelperCount)
}

func TestOfferHelpIdempotent(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")
	actor := Actor{UserID: "helper-1", Name: "Helper", Email: "helper@example.com"}

	first, isNew, err := svc.OfferHelp(context.Background(), h.ID, actor, &OfferHelpRequest{})
	require.NoError(t, err)
	require.True(t, isNew)

	second, isNew, err := svc.OfferHelp(context.Background(), h.ID, actor, &OfferHelpRequest{})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&Helper{}).Where("help_request_id = ?", h.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOfferHelpDoesNotRevertResolved(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")

	status := StatusResolved
	_, err := svc.Update(h.ID, "creator-1", &UpdateHelpRequestRequest{Status: &status})
	require.NoError(t, err)

	_, _, err = svc.OfferHelp(context.Background(), h.ID,
		Actor{UserID: "helper-1", Email: "helper@example.com"}, &OfferHelpRequest{})
	require.NoError(t, err)

	got, err := svc.GetByID(h.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, got.Status)
}

func TestOfferHelpMaterializesProfile(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")

	_, _, err := svc.OfferHelp(context.Background(), h.ID,
		Actor{UserID: "helper-1", Name: "Karim Ahmed", Email: "karim@example.com"},
		&OfferHelpRequest{})
	require.NoError(t, err)

	var p profile.Profile
	require.NoError(t, svc.Repo.DB.Where("user_id = ?", "helper-1").First(&p).Error)
	assert.Equal(t, "Karim Ahmed", p.FullName)

	helpers, err := svc.ListHelpers(h.ID)
	require.NoError(t, err)
	require.Len(t, helpers, 1)
	require.NotNil(t, helpers[0].Profile)
	assert.Equal(t, "Karim Ahmed", helpers[0].Profile.FullName)
}

func TestOfferHelpMissingRequest(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.OfferHelp(context.Background(), "missing",
		Actor{UserID: "helper-1"}, &OfferHelpRequest{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddCommentRequiresContent(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")

	_, err := svc.AddComment(context.Background(), h.ID,
		Actor{UserID: "u-1"}, &AddCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCommentsNewestFirstWithProfiles(t *testing.T) {
	svc := newTestService(t)
	h := seedRequest(t, svc, "creator-1")
	actor := Actor{UserID: "u-1", Name: "Rina", Email: "rina@example.com"}

	_, err := svc.AddComment(context.Background(), h.ID, actor, &AddCommentRequest{Content: "first"})
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), h.ID, actor, &AddCommentRequest{Content: "second"})
	require.NoError(t, err)

	comments, err := svc.ListComments(h.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.NotNil(t, comments[0].Profile)
	assert.Equal(t, "Rina", comments[0].Profile.FullName)
}
