package extractor

import (
	"strings"
	"testing"
)

const githubDOMFixture = `<html><body>
<article class="Box-row">
  <h2 class="h3 lh-condensed">
    <a href="/golang/go">
      <span class="text-normal">golang /</span>
      go
    </a>
  </h2>
  <p class="col-9 color-fg-muted my-1 pr-4">The Go programming language</p>
</article>
<article class="Box-row">
  <h2 class="h3 lh-condensed">
    <a href="/gin-gonic/gin">
      <span class="text-normal">gin-gonic /</span>
      gin
    </a>
  </h2>
  <p class="col-9 color-fg-muted my-1 pr-4">Gin is a HTTP web framework</p>
</article>
</body></html>`

func TestGitHubDOMStrategy(t *testing.T) {
	items := githubDOMStrategy("article.Box-row", "h2 a")(githubDOMFixture, 10)
	if len(items) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(items))
	}
	if !strings.HasPrefix(items[0].Title, "golang/go: ") {
		t.Fatalf("title not owner/name: desc, got %q", items[0].Title)
	}
	if items[0].Url != "https://github.com/golang/go" {
		t.Fatalf("url = %q", items[0].Url)
	}
}

func TestGitHubRegexFallback(t *testing.T) {
	raw := `<article class="Box-row"><h2 class="h3 lh-condensed">` +
		`<a data-hydro-click="x" href="/rust-lang/rust">rust-lang / rust</a></h2>` +
		`<p class="col-9 color-fg-muted my-1 pr-4">Empowering everyone</p></article>`

	items := extractGitHubRegex(raw, 10)
	if len(items) != 1 {
		t.Fatalf("expected 1 repo, got %d", len(items))
	}
	if items[0].Title != "rust-lang/rust: Empowering everyone" {
		t.Fatalf("title = %q", items[0].Title)
	}
	if items[0].Url != "https://github.com/rust-lang/rust" {
		t.Fatalf("url = %q", items[0].Url)
	}
}

func TestGitHubLimitRespected(t *testing.T) {
	items := githubDOMStrategy("article.Box-row", "h2 a")(githubDOMFixture, 1)
	if len(items) != 1 {
		t.Fatalf("limit not respected, got %d", len(items))
	}
}

func TestGitHubGarbageReturnsEmpty(t *testing.T) {
	if got := githubDOMStrategy("article.Box-row", "h2 a")("plain text", 10); len(got) != 0 {
		t.Fatalf("garbage should yield empty, got %d", len(got))
	}
	if got := extractGitHubRegex("", 10); len(got) != 0 {
		t.Fatalf("empty input should yield empty, got %d", len(got))
	}
}
