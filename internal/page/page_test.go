package page

import (
	"errors"
	"path"
	"strings"
	"testing"

	"github.com/browse-hub/browse-hub/internal/ident"
	"github.com/browse-hub/browse-hub/internal/storage"
	"github.com/browse-hub/browse-hub/internal/summary"
)

type stubDocument struct {
	content string
	lines   int
}

func (d stubDocument) Content() string { return d.content }
func (d stubDocument) Lines() int      { return d.lines }

type stubGenerator struct {
	lastPath string
	err      error
}

func (g *stubGenerator) Generate(path string) (Document, error) {
	g.lastPath = path
	if g.err != nil {
		return nil, g.err
	}
	return stubDocument{content: "<pre>rendered</pre>", lines: 42}, nil
}

type stubSource struct{}

func (stubSource) Solution(user, repo, solution string) *summary.SolutionSummary {
	return &summary.SolutionSummary{Name: solution, Path: path.Join(user, repo, solution)}
}

func TestBuildFileView(t *testing.T) {
	layout := newTestLayout(t)
	gen := &stubGenerator{}

	view, err := BuildFileView(stubSource{}, layout, gen, ident.Parse("alice/repoA/solX/src/main.go.html"))
	if err != nil {
		t.Fatalf("build error: %v", err)
	}

	if view.Content != "<pre>rendered</pre>" || view.Lines != 42 {
		t.Fatalf("unexpected document fields: %+v", view)
	}
	if view.Solution == nil || view.Solution.Name != "solX" {
		t.Fatalf("expected solution summary attached: %+v", view.Solution)
	}
	if !strings.HasSuffix(gen.lastPath, "main.go.html") {
		t.Fatalf("generator should receive the resolved file path, got %s", gen.lastPath)
	}
}

func TestBuildFileViewRequiresFullIdentifier(t *testing.T) {
	layout := newTestLayout(t)

	for _, raw := range []string{"", "alice", "alice/repoA", "alice/repoA/solX"} {
		if _, err := BuildFileView(stubSource{}, layout, &stubGenerator{}, ident.Parse(raw)); err == nil {
			t.Fatalf("expected error for incomplete identifier %q", raw)
		}
	}
}

func TestBuildFileViewRejectsEscapingPath(t *testing.T) {
	layout := newTestLayout(t)

	id := ident.Ident{User: "alice", Repo: "repoA", Solution: "solX", FilePath: "../../../etc/passwd"}
	if _, err := BuildFileView(stubSource{}, layout, &stubGenerator{}, id); err == nil {
		t.Fatalf("expected traversal rejection")
	}
}

func TestBuildFileViewPropagatesGeneratorError(t *testing.T) {
	layout := newTestLayout(t)
	genErr := errors.New("render failed")

	_, err := BuildFileView(stubSource{}, layout, &stubGenerator{err: genErr}, ident.Parse("alice/repoA/solX/a.html"))
	if err == nil || !errors.Is(err, genErr) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
}

func newTestLayout(t *testing.T) storage.Layout {
	t.Helper()
	layout, err := storage.NewLayout(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create layout: %v", err)
	}
	return layout
}
