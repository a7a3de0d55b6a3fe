package commands

import (
	"strings"
	"testing"

	"findcourse/internal/cli/apitest"
	fsrepo "findcourse/internal/cli/repo/fs"
)

func TestRegister_InvalidFormStaysLocal(t *testing.T) {
	env := newTestEnv(t)

	// email missing: the form is refused before any request is issued
	_, err := env.run(t, registerCmd{},
		"--first", "Bek", "--last", "Tursunov",
		"--phone", "+998901112233", "--password", "pw123")
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Fatalf("error should name the missing field: %v", err)
	}
	if got := env.srv.Requests(); len(got) != 0 {
		t.Fatalf("no request should have been issued, got %v", got)
	}

	// bad role is refused the same way
	_, err = env.run(t, registerCmd{},
		"--first", "Bek", "--last", "Tursunov", "--email", "bek@example.com",
		"--phone", "+998901112233", "--password", "pw123", "--role", "ADMIN")
	if err == nil {
		t.Fatalf("expected a role error")
	}
	if got := env.srv.Requests(); len(got) != 0 {
		t.Fatalf("no request should have been issued, got %v", got)
	}
}

func TestRegisterVerifyLogin_FullFlow(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, registerCmd{},
		"--first", "Bek", "--last", "Tursunov", "--email", "bek@example.com",
		"--phone", "+998901112233", "--password", "pw123", "--role", "CEO")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.Contains(out, "bek@example.com") {
		t.Fatalf("output should carry the email forward: %q", out)
	}
	want := []string{"POST /users/register", "POST /users/send-otp"}
	got := env.srv.Requests()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("requests = %v, want %v", got, want)
	}

	// login before verification is refused
	if _, err := env.run(t, loginCmd{}, "bek@example.com", "pw123"); err == nil {
		t.Fatalf("unverified login should fail")
	}

	if _, err := env.run(t, verifyOtpCmd{}, "--email", "bek@example.com", "--otp", apitest.FixedOTP); err != nil {
		t.Fatalf("verify-otp: %v", err)
	}

	if _, err := env.run(t, loginCmd{}, "bek@example.com", "pw123"); err != nil {
		t.Fatalf("login after verify: %v", err)
	}

	// the rotated pair is on disk
	store := fsrepo.TokenFSStore{Dir: env.cfg.TokenDir}
	if tok, err := store.LoadAccess(); err != nil || tok == "" {
		t.Fatalf("access token not saved: %v", err)
	}
	if tok, err := store.LoadRefresh(); err != nil || tok == "" {
		t.Fatalf("refresh token not saved: %v", err)
	}

	out, err = env.run(t, whoamiCmd{})
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "bek@example.com") || !strings.Contains(out, "CEO") {
		t.Fatalf("whoami output: %q", out)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", "USER")
	env.login(t, "aziza@example.com", "pw")

	if _, err := env.run(t, logoutCmd{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	out, err := env.run(t, whoamiCmd{})
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "Not logged in") {
		t.Fatalf("expected anonymous whoami, got %q", out)
	}
}

func TestLogin_UsageAndFailure(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, loginCmd{}, "onlyEmail"); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	env.srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", "USER")
	if _, err := env.run(t, loginCmd{}, "aziza@example.com", "wrong"); err == nil {
		t.Fatalf("expected error for a wrong password")
	}
}
