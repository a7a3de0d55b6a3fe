package commands

import (
	"strings"
	"testing"

	"findcourse/internal/model"
)

func seedResourceWorld(t *testing.T, env *testEnv) model.Category {
	t.Helper()
	return env.srv.SeedCategory("Books",
		model.Resource{Name: "Grammar in Use", Description: "classic English grammar", Media: "https://example.com/grammar"},
		model.Resource{Name: "IELTS Trainer", Description: "exam prep", Media: "https://example.com/ielts"},
	)
}

func TestResources_ListAndFilter(t *testing.T) {
	env := newTestEnv(t)
	cat := seedResourceWorld(t, env)
	env.srv.SeedCategory("Videos",
		model.Resource{Name: "Phonetics course", Description: "sounds", Media: "https://example.com/phonetics"})

	out, err := env.run(t, categoriesCmd{})
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if !strings.Contains(out, "Books") || !strings.Contains(out, "(2 resources)") {
		t.Fatalf("categories output:\n%s", out)
	}

	out, err = env.run(t, resourcesCmd{}, "--search", "grammar")
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	if !strings.Contains(out, "Grammar in Use") || strings.Contains(out, "IELTS Trainer") {
		t.Fatalf("search output:\n%s", out)
	}

	out, err = env.run(t, resourcesCmd{}, "--category", itoa(cat.ID))
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	if !strings.Contains(out, "Total: 2") || strings.Contains(out, "Phonetics") {
		t.Fatalf("category filter output:\n%s", out)
	}
}

func TestResourceAddAndDelete(t *testing.T) {
	env := newTestEnv(t)
	cat := seedResourceWorld(t, env)
	env.srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", "USER")

	// sharing requires a session
	if _, err := env.run(t, resourceAddCmd{},
		"--category", itoa(cat.ID), "--name", "Cheat sheet", "--media", "https://example.com/cs"); err == nil {
		t.Fatalf("resource-add without a session must fail")
	}

	env.login(t, "aziza@example.com", "pw")
	out, err := env.run(t, resourceAddCmd{},
		"--category", itoa(cat.ID), "--name", "Cheat sheet", "--media", "https://example.com/cs")
	if err != nil {
		t.Fatalf("resource-add: %v", err)
	}
	if !strings.Contains(out, "created") {
		t.Fatalf("add output: %q", out)
	}

	out, err = env.run(t, resourcesCmd{}, "--search", "cheat")
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	if !strings.Contains(out, "Cheat sheet") {
		t.Fatalf("new resource missing:\n%s", out)
	}
	id := extractID(t, out, "Cheat sheet")

	if _, err := env.run(t, resourceDelCmd{}, id, "--yes"); err != nil {
		t.Fatalf("resource-del: %v", err)
	}
	out, _ = env.run(t, resourcesCmd{}, "--search", "cheat")
	if !strings.Contains(out, "No resources matched") {
		t.Fatalf("deleted resource still listed:\n%s", out)
	}
}

func TestResourceAdd_MissingMedia(t *testing.T) {
	env := newTestEnv(t)
	cat := seedResourceWorld(t, env)
	env.srv.SeedUser("Aziza", "Karimova", "aziza@example.com", "pw", "USER")
	env.login(t, "aziza@example.com", "pw")

	_, err := env.run(t, resourceAddCmd{}, "--category", itoa(cat.ID), "--name", "No link")
	if err == nil {
		t.Fatalf("resource without media must be refused")
	}
	if got := env.srv.Requests(); len(got) != 0 {
		t.Fatalf("no request should have been issued, got %v", got)
	}
}
