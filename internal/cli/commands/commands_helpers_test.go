package commands

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"findcourse/internal/cli/apitest"
	"findcourse/internal/config"
	"findcourse/internal/model"
)

// testEnv wires a fake API server and an isolated token directory so
// commands run exactly as they would against the real service.
type testEnv struct {
	srv *apitest.Server
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return &testEnv{
		srv: srv,
		cfg: &config.Config{
			APIBase:    srv.URL(),
			TokenDir:   t.TempDir(),
			TimeoutSec: 5,
		},
	}
}

// run executes one command capturing its output.
func (e *testEnv) run(t *testing.T, cmd Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	oldOut := Out
	Out = &buf
	defer func() { Out = oldOut }()
	err := cmd.Run(context.Background(), e.cfg, args)
	return buf.String(), err
}

// answer feeds the given line to the next confirmation prompt.
func answer(t *testing.T, line string) {
	t.Helper()
	oldIn := In
	In = strings.NewReader(line + "\n")
	t.Cleanup(func() { In = oldIn })
}

func (e *testEnv) seedBrowseWorld(t *testing.T) (owner model.User, centers []model.Center) {
	t.Helper()
	e.srv.SeedRegions(model.Region{ID: 1, Name: "Tashkent"}, model.Region{ID: 2, Name: "Samarkand"})
	e.srv.SeedMajors(model.Major{ID: 10, Name: "English"}, model.Major{ID: 11, Name: "Art"})
	owner = e.srv.SeedUser("Ceo", "One", "ceo@example.com", "pw", model.RoleCEO)
	centers = []model.Center{
		e.srv.SeedCenter("Art Academy", "Chilonzor 5", "+998711111111", 1, owner.ID, model.Major{ID: 11, Name: "Art"}),
		e.srv.SeedCenter("Smart Steps", "Yunusobod 2", "+998712222222", 1, owner.ID, model.Major{ID: 10, Name: "English"}),
		e.srv.SeedCenter("Math Hub", "Registon 1", "+998713333333", 2, owner.ID, model.Major{ID: 11, Name: "Art"}),
	}
	return owner, centers
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// extractID pulls the first "#<id>" off the output line holding the
// given text.
func extractID(t *testing.T, out, text string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, text) {
			continue
		}
		fields := strings.Fields(line)
		for _, f := range fields {
			if strings.HasPrefix(f, "#") {
				return strings.TrimPrefix(f, "#")
			}
		}
	}
	t.Fatalf("no comment line with %q in:\n%s", text, out)
	return ""
}

// login performs a real login through the login command so the token
// files land in the env's token dir.
func (e *testEnv) login(t *testing.T, email, password string) {
	t.Helper()
	if _, err := e.run(t, loginCmd{}, email, password); err != nil {
		t.Fatalf("login: %v", err)
	}
	e.srv.ResetRequests()
}
