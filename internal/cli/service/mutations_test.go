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
	"findcourse/internal/cli/store"
	"findcourse/internal/model"
)

func loggedIn(t *testing.T, srv *apitest.Server, client *api.Client, email string) *auth.Session {
	t.Helper()
	st := fsrepo.TokenFSStore{Dir: t.TempDir()}
	require.NoError(t, st.SaveAccess(srv.AccessTokenFor(email)))
	sess := auth.Resolve(client, st)
	require.True(t, sess.Authenticated())
	return sess
}

func TestMutator_ToggleLikeRoundTrip(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	c := srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID)
	fan := srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", model.RoleUser)
	_ = loggedIn(t, srv, client, fan.Email)

	idx := store.NewLikeIndex(nil)
	m := NewMutator(client)

	liked, err := m.ToggleLike(context.Background(), idx, c.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, idx.Liked(c.ID))

	// second toggle removes by the record id learned from the first
	liked, err = m.ToggleLike(context.Background(), idx, c.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.False(t, idx.Liked(c.ID))
	assert.Equal(t, 0, idx.Len())
}

func TestMutator_AddCommentValidatesLocally(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	c := srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID)
	fan := srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", model.RoleUser)
	_ = loggedIn(t, srv, client, fan.Email)
	srv.ResetRequests()

	m := NewMutator(client)
	cs := &store.Comments{}

	_, err := m.AddComment(context.Background(), cs, c.ID, "   ", 5)
	require.Error(t, err)
	_, err = m.AddComment(context.Background(), cs, c.ID, "nice place", 0)
	require.Error(t, err)
	assert.Empty(t, srv.Requests(), "rejected comments must not reach the network")

	cm, err := m.AddComment(context.Background(), cs, c.ID, "nice place", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cm.Star)
	assert.Len(t, cs.Items, 1)
}

func TestMutator_EditCenterDiffs(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	seeded := srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID)
	_ = loggedIn(t, srv, client, owner.Email)

	snapshot, err := NewCatalogService(client).LoadCenter(context.Background(), seeded.ID)
	require.NoError(t, err)
	srv.ResetRequests()

	m := NewMutator(client)

	// same values → refused before any request
	err = m.EditCenter(context.Background(), snapshot, CenterEdit{Name: snapshot.Name})
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Empty(t, srv.Requests())

	err = m.EditCenter(context.Background(), snapshot, CenterEdit{Name: "Everest Academy"})
	require.NoError(t, err)
	assert.Equal(t, "Everest Academy", snapshot.Name)

	got, err := NewCatalogService(client).LoadCenter(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Everest Academy", got.Name)
	assert.Equal(t, "Chilonzor 5", got.Address, "untouched fields keep their value")
}

func TestMutator_CreateAndDeleteCenter(t *testing.T) {
	srv, client := seededServer(t)
	ceo := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	_ = loggedIn(t, srv, client, ceo.Email)

	m := NewMutator(client)
	cat := &store.Catalog{}

	_, err := m.CreateCenter(context.Background(), cat, CenterInput{Name: "No Address"})
	require.Error(t, err, "address and region are required")

	c, err := m.CreateCenter(context.Background(), cat, CenterInput{
		Name: "Everest Learning", Address: "Chilonzor 5", RegionID: 1, MajorsID: []int64{10},
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Len(t, cat.Centers, 1)
	assert.Len(t, cat.MyCenters, 1)

	require.NoError(t, m.DeleteCenter(context.Background(), cat, c.ID))
	assert.Empty(t, cat.Centers)
}

func TestComposeVisitDate(t *testing.T) {
	got, err := ComposeVisitDate("2026-09-14", "15:30")
	require.NoError(t, err)
	ts, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.Equal(t, 14, ts.Day())
	assert.Equal(t, 15, ts.Hour())

	_, err = ComposeVisitDate("14.09.2026", "15:30")
	assert.Error(t, err)
}

func TestMutator_BookGuestRules(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	c := srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID)
	srv.SeedFilials(model.Branch{ID: 300, Name: "Main", CenterID: c.ID})

	// anonymous session
	st := fsrepo.TokenFSStore{Dir: t.TempDir()}
	sess := auth.Resolve(client, st)
	require.False(t, sess.Authenticated())
	srv.ResetRequests()

	m := NewMutator(client)
	cat := &store.Catalog{}
	base := BookingInput{
		CenterID: c.ID, MajorID: 10, FilialID: 300,
		Date: "2026-09-14", Time: "15:30",
	}

	// guests must identify themselves; refused before any request
	_, err := m.Book(context.Background(), sess, cat, base)
	require.Error(t, err)
	assert.Empty(t, srv.Requests())

	in := base
	in.Name = "Aziza"
	in.Phone = "+998901112233"
	rec, err := m.Book(context.Background(), sess, cat, in)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", rec.Status)
	assert.Len(t, cat.Receptions, 1)
}

func TestMutator_BookAuthenticatedSkipsContactFields(t *testing.T) {
	srv, client := seededServer(t)
	owner := srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	c := srv.SeedCenter("Everest Learning", "Chilonzor 5", "+998711234567", 1, owner.ID)
	fan := srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", model.RoleUser)
	sess := loggedIn(t, srv, client, fan.Email)

	m := NewMutator(client)
	cat := &store.Catalog{}
	rec, err := m.Book(context.Background(), sess, cat, BookingInput{
		CenterID: c.ID, MajorID: 10, Date: "2026-09-14", Time: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, fan.ID, rec.UserID)

	require.NoError(t, m.CancelBooking(context.Background(), cat, rec.ID))
	assert.Empty(t, cat.Receptions)
}

func TestMutator_UpdateProfileDiffs(t *testing.T) {
	srv, client := seededServer(t)
	u := srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", model.RoleUser)
	sess := loggedIn(t, srv, client, u.Email)

	profile, err := sess.Mydata(context.Background())
	require.NoError(t, err)
	srv.ResetRequests()

	m := NewMutator(client)
	err = m.UpdateProfile(context.Background(), &profile.User, ProfileEdit{FirstName: "Aziza"})
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Empty(t, srv.Requests())

	err = m.UpdateProfile(context.Background(), &profile.User, ProfileEdit{Phone: "+998909999999"})
	require.NoError(t, err)
	assert.Equal(t, "+998909999999", profile.Phone)

	fresh, err := sess.Mydata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "+998909999999", fresh.Phone)
}

func TestMutator_DeleteAccount(t *testing.T) {
	srv, client := seededServer(t)
	u := srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", model.RoleUser)
	sess := loggedIn(t, srv, client, u.Email)

	require.NoError(t, NewMutator(client).DeleteAccount(context.Background(), sess, u.ID))
	assert.False(t, sess.Authenticated())

	err := sess.Login(context.Background(), u.Email, "pw")
	assert.Error(t, err, "the account is gone")
}
