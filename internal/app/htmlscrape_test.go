package app

import "testing"

const trendingFixture = `<!DOCTYPE html>
<html>
<body>
<main>
<article class="Box-row">
  <h2 class="h3"><a href="/login?return_to=somewhere">Sign in</a>
    <a href="/acme/widgets">acme / widgets</a></h2>
  <p class="col-9 color-fg-muted my-1 pr-4">
    A  widget
    toolkit
  </p>
  <span itemprop="programmingLanguage">Go</span>
  <span class="d-inline-block float-sm-right">1,234 stars today</span>
</article>
<article class="Box-row">
  <h2 class="h3"><a href="/solo-dev/tool/">solo-dev / tool</a></h2>
  <span itemprop="programmingLanguage">Rust</span>
</article>
<article class="Box-row">
  <h2 class="h3"><a href="/sponsors/someone">Sponsor</a></h2>
</article>
</main>
</body>
</html>`

func TestParseTrendingPage(t *testing.T) {
	repos := parseTrendingPage([]byte(trendingFixture))
	if len(repos) != 2 {
		t.Fatalf("got %d repos, want 2", len(repos))
	}

	first := repos[0]
	if first.Repo != "acme/widgets" {
		t.Errorf("repo = %q, want acme/widgets", first.Repo)
	}
	if first.Name != "widgets" {
		t.Errorf("name = %q, want widgets", first.Name)
	}
	if first.URL != "https://github.com/acme/widgets" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Description != "A widget toolkit" {
		t.Errorf("description = %q, want collapsed text", first.Description)
	}
	if first.Language != "Go" {
		t.Errorf("language = %q, want Go", first.Language)
	}
	if first.StarsToday != "1234" {
		t.Errorf("stars today = %q, want 1234", first.StarsToday)
	}

	second := repos[1]
	if second.Repo != "solo-dev/tool" {
		t.Errorf("repo = %q, want solo-dev/tool", second.Repo)
	}
	if second.Description != "" {
		t.Errorf("description = %q, want empty", second.Description)
	}
	if second.StarsToday != "0" {
		t.Errorf("stars today = %q, want 0 when absent", second.StarsToday)
	}
}

func TestParseTrendingPage_NoArticles(t *testing.T) {
	if repos := parseTrendingPage([]byte("<html><body><p>nothing</p></body></html>")); len(repos) != 0 {
		t.Errorf("got %d repos from empty page", len(repos))
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "og description preferred",
			body: `<html><head>
				<meta name="description" content="plain">
				<meta property="og:description" content="rich">
				</head></html>`,
			want: "rich",
		},
		{
			name: "meta description fallback",
			body: `<html><head><meta name="description" content="plain"></head></html>`,
			want: "plain",
		},
		{
			name: "empty content skipped",
			body: `<html><head><meta property="og:description" content="  "></head></html>`,
			want: "",
		},
		{
			name: "no meta tags",
			body: `<html><body>hi</body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDescription([]byte(tt.body)); got != tt.want {
				t.Errorf("extractDescription = %q, want %q", got, tt.want)
			}
		})
	}
}
