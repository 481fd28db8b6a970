package browsehub_test

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	browsehub "github.com/browse-hub/browse-hub"
)

// TestEndToEndScenario walks the canonical flow: cold build of a user summary,
// warm read from the sidecar, and repair of a corrupted repo sidecar.
func TestEndToEndScenario(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "alice", "repoA", "solX")
	mkdirAll(t, root, "alice", "repoB")

	svc := newTestService(t, root)

	got := svc.User("alice")
	want := &browsehub.UserSummary{
		Username: "alice",
		Path:     filepath.Join(svc.StorageRoot(), "alice"),
		Repos: []browsehub.RepoSummary{
			{Name: "repoA", Username: "alice", Solutions: []string{"solX"}},
			{Name: "repoB", Username: "alice", Solutions: []string{}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cold build mismatch (-want +got):\n%s", diff)
	}

	sidecar := filepath.Join(svc.StorageRoot(), "alice", "user.data")
	if _, err := os.Stat(sidecar); err != nil {
		t.Fatalf("expected user.data to be created: %v", err)
	}

	second := svc.User("alice")
	if diff := cmp.Diff(got, second); diff != "" {
		t.Fatalf("warm read should match the cached structure:\n%s", diff)
	}

	repoSidecar := filepath.Join(svc.StorageRoot(), "alice", "repoA", "repo.data")
	if err := os.WriteFile(repoSidecar, []byte("garbage bytes"), 0o644); err != nil {
		t.Fatalf("corrupt sidecar error: %v", err)
	}

	repo := svc.Repo("alice", "repoA")
	wantRepo := &browsehub.RepoSummary{Name: "repoA", Username: "alice", Solutions: []string{"solX"}}
	if diff := cmp.Diff(wantRepo, repo); diff != "" {
		t.Fatalf("repaired repo mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(repoSidecar)
	if err != nil {
		t.Fatalf("read healed sidecar error: %v", err)
	}
	var healed browsehub.RepoSummary
	if err := json.Unmarshal(data, &healed); err != nil {
		t.Fatalf("healed sidecar should hold valid JSON: %v", err)
	}
	if diff := cmp.Diff(*wantRepo, healed); diff != "" {
		t.Fatalf("healed sidecar content mismatch:\n%s", diff)
	}
}

func TestSolutionMetadata(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "alice", "repoA", "solX")
	infoPath := filepath.Join(root, "alice", "repoA", "solX", "solutionInfo.json")
	if err := os.WriteFile(infoPath, []byte(`{"language":"go"}`), 0o644); err != nil {
		t.Fatalf("write metadata error: %v", err)
	}

	svc := newTestService(t, root)

	sol := svc.Solution("alice", "repoA", "solX")
	if sol.Path != "alice/repoA/solX" {
		t.Fatalf("unexpected solution path: %s", sol.Path)
	}
	if sol.Info["language"] != "go" {
		t.Fatalf("metadata not surfaced: %v", sol.Info)
	}

	missing := svc.Solution("alice", "repoA", "solY")
	if missing.Info != nil {
		t.Fatalf("absent metadata must be nil, got %v", missing.Info)
	}
}

type fixedDocument struct{}

func (fixedDocument) Content() string { return "<pre>ok</pre>" }
func (fixedDocument) Lines() int      { return 7 }

type fixedGenerator struct{}

func (fixedGenerator) Generate(string) (browsehub.Document, error) {
	return fixedDocument{}, nil
}

func TestFileViewAssembly(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "alice", "repoA", "solX")

	svc := newTestService(t, root)

	view, err := svc.File("alice/repoA/solX/src/main.go.html", fixedGenerator{})
	if err != nil {
		t.Fatalf("file view error: %v", err)
	}
	if view.Lines != 7 || view.Content != "<pre>ok</pre>" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Solution == nil || view.Solution.Name != "solX" {
		t.Fatalf("expected solution summary attached: %+v", view.Solution)
	}

	if _, err := svc.File("alice/repoA", fixedGenerator{}); err == nil {
		t.Fatalf("incomplete identifier must fail")
	}
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := "StoragePath = \"" + filepath.ToSlash(filepath.Join(dir, "storage")) + "\"\nCacheTTL = \"1h\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config error: %v", err)
	}

	svc, err := browsehub.NewFromConfig(cfgPath)
	if err != nil {
		t.Fatalf("NewFromConfig error: %v", err)
	}
	if svc.StorageRoot() != filepath.Join(dir, "storage") {
		t.Fatalf("unexpected storage root: %s", svc.StorageRoot())
	}
}

func TestParseIdent(t *testing.T) {
	id := browsehub.ParseIdent("alice/repoA/solX/a/b.html")
	want := browsehub.Ident{User: "alice", Repo: "repoA", Solution: "solX", FilePath: "a/b.html"}
	if id != want {
		t.Fatalf("ParseIdent = %+v, want %+v", id, want)
	}
}

func newTestService(t *testing.T, root string) *browsehub.Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc, err := browsehub.New(browsehub.Options{
		StorageRoot: root,
		FreshFor:    time.Hour,
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func mkdirAll(t *testing.T, root string, parts ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(append([]string{root}, parts...)...), 0o755); err != nil {
		t.Fatalf("mkdir error: %v", err)
	}
}
