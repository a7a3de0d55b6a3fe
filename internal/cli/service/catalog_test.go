package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findcourse/internal/cli/api"
	"findcourse/internal/cli/apitest"
	"findcourse/internal/cli/auth"
	fsrepo "findcourse/internal/cli/repo/fs"
	"findcourse/internal/model"
)

func seededServer(t *testing.T) (*apitest.Server, *api.Client) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedRegions(model.Region{ID: 1, Name: "Tashkent"}, model.Region{ID: 2, Name: "Samarkand"})
	srv.SeedMajors(model.Major{ID: 10, Name: "English"}, model.Major{ID: 11, Name: "Math"})
	return srv, api.New(srv.URL(), 5*time.Second)
}

func TestCatalogService_LoadCenterBrowse(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID, model.Major{ID: 10, Name: "English"})
	srv.SeedCenter("Cambridge House", "Yunusobod 2", "+998719876543", 2, owner.ID)

	cat, err := NewCatalogService(client).LoadCenterBrowse(context.Background())
	require.NoError(t, err)

	assert.Len(t, cat.Centers, 2)
	assert.Len(t, cat.Regions, 2)
	assert.Len(t, cat.Majors, 2)

	// all three collections arrive from one barrier; the log holds
	// exactly the three listing calls in some order
	assert.ElementsMatch(t, []string{"GET /centers", "GET /regions/search", "GET /major"}, srv.Requests())
}

func TestCatalogService_LoadCenter(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	c := srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID)
	commenter := srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", model.RoleUser)
	srv.SeedComment(c.ID, commenter.ID, "great teachers", 5)

	got, err := NewCatalogService(client).LoadCenter(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Everest Learning", got.Name)
	require.Len(t, got.Comments, 1)
	require.NotNil(t, got.Comments[0].User)
	assert.Equal(t, "Aziza Karimova", got.Comments[0].User.FullName())

	_, err = NewCatalogService(client).LoadCenter(context.Background(), 99999)
	assert.Error(t, err)
}

func TestCatalogService_LoadFavorites(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	c := srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID)

	fan := srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", model.RoleUser)
	srv.SeedLike(fan.ID, c.ID)
	srv.SeedLike(fan.ID, 4040) // center no longer exists

	store := fsrepo.TokenFSStore{Dir: t.TempDir()}
	require.NoError(t, store.SaveAccess(srv.AccessTokenFor("aziza@example.com")))
	sess := auth.Resolve(client, store)
	require.True(t, sess.Authenticated())

	views, cat, err := NewCatalogService(client).LoadFavorites(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.NotNil(t, views[0].Center)
	assert.Equal(t, "Everest Learning", views[0].Center.Name)
	// a like whose center is gone keeps its row, with no center joined
	assert.Nil(t, views[1].Center)

	assert.True(t, cat.Likes().Liked(c.ID))
	assert.Equal(t, 2, cat.Likes().Len())
}
