package profile

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/internal/apperror"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Profile{}))
	return NewService(NewRepository(db), zap.NewNop())
}

func TestGetMissingProfile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get("nobody")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateOrUpdateUpserts(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.CreateOrUpdate("user-1", &UpdateProfileRequest{
		Username: "rahim",
		FullName: "Rahim Uddin",
		Bio:      "I like beach cleanups",
		Skills:   []string{"first aid"},
		Causes:   []string{"environment"},
	})
	require.NoError(t, err)
	assert.Equal(t, "rahim", p.Username)
	assert.JSONEq(t, `["first aid"]`, string(p.Skills))

	p, err = svc.CreateOrUpdate("user-1", &UpdateProfileRequest{
		Username: "rahim",
		FullName: "Rahim Uddin",
		Bio:      "updated bio",
		Skills:   []string{"first aid", "cooking"},
	})
	require.NoError(t, err)
	assert.Equal(t, "updated bio", p.Bio)
	assert.JSONEq(t, `["first aid","cooking"]`, string(p.Skills))

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&Profile{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateOrUpdateRequiresIdentity(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateOrUpdate("", &UpdateProfileRequest{Username: "x"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestEnsureProfileMaterializesOnce(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.EnsureProfile("user-1", IdentityHints{
		Email:    "rahim@example.com",
		FullName: "Rahim Uddin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", first.FullName)

	second, err := svc.EnsureProfile("user-1", IdentityHints{Email: "other@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&Profile{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureProfileKeepsExplicitProfile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateOrUpdate("user-1", &UpdateProfileRequest{
		Username: "chosen-handle",
		FullName: "Chosen Name",
	})
	require.NoError(t, err)

	p, err := svc.EnsureProfile("user-1", IdentityHints{FullName: "Token Name"})
	require.NoError(t, err)
	assert.Equal(t, "chosen-handle", p.Username)
	assert.Equal(t, "Chosen Name", p.FullName)
}

func TestDeriveUsername(t *testing.T) {
	cases := []struct {
		name   string
		userID string
		hints  IdentityHints
		want   string
	}{
		{"explicit username wins", "u", IdentityHints{Username: "handle", FullName: "Full", Email: "a@b.c"}, "handle"},
		{"full name next", "u", IdentityHints{FullName: "Full Name", Email: "a@b.c"}, "Full Name"},
		{"email local part", "u", IdentityHints{Email: "karim@example.com"}, "karim"},
		{"uuid stub", "3f2504e0-4f89-11d3-9a0c-0305e82c3301", IdentityHints{}, "user_3f2504e0"},
		{"short id stub", "abc", IdentityHints{}, "user_abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveUsername(tc.userID, tc.hints))
		})
	}
}
