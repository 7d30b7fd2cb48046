package app

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/example/dailyctl/internal/config"
	"github.com/example/dailyctl/internal/models"
)

// sectionTitles maps section keys to their rendered headings, in the
// fixed page order.
var sectionTitles = []struct {
	Key   string
	Title string
}{
	{"releases", "🚀 发布 / 上线"},
	{"updates", "📈 更新 / 迭代"},
	{"opensource", "🔓 开源 / 权重"},
	{"benchmarks", "📊 评测 / 基准"},
	{"business", "💼 商业 / 融资"},
	{"risks", "⚠️ 风险 / 事故"},
}

// archiveLinkLimit caps the archive link list on the homepage.
const archiveLinkLimit = 14

// RenderService deterministically renders the daily report page from
// its JSON data and the page template. It performs no fetches: given
// the same data and template it produces the same bytes.
//
// The render writes archive/<date>.html and then copies it byte for
// byte to the live page, establishing the invariant verify checks.
type RenderService struct {
	cfg *config.Config
}

// NewRenderService creates a new RenderService.
func NewRenderService(cfg *config.Config) *RenderService {
	return &RenderService{cfg: cfg}
}

// Run renders the page and returns the archive path written.
func (s *RenderService) Run() (string, error) {
	daily, err := s.loadDaily()
	if err != nil {
		return "", err
	}
	techneme := s.loadTechneme()

	date := daily.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	tplData, err := os.ReadFile(s.cfg.TemplatePath())
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	// Template placeholders: {{DATE}}, {{DATE_CN}}, {{CONTENT}}, {{ARCHIVE_LINKS}}
	page := string(tplData)
	page = strings.ReplaceAll(page, "{{DATE}}", html.EscapeString(date))
	page = strings.ReplaceAll(page, "{{DATE_CN}}", html.EscapeString(dateCN(date)))
	page = strings.ReplaceAll(page, "{{CONTENT}}", s.renderContent(daily, techneme))
	page = strings.ReplaceAll(page, "{{ARCHIVE_LINKS}}", archiveLinks(s.cfg.ArchiveDirPath()))

	if err := os.MkdirAll(s.cfg.ArchiveDirPath(), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive dir: %w", err)
	}

	archivePath := s.cfg.ArchivePath(date)
	if err := os.WriteFile(archivePath, []byte(page), 0644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	// Homepage = full daily report, byte-identical
	if err := os.WriteFile(s.cfg.OutputPath(), []byte(page), 0644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}

	return archivePath, nil
}

func (s *RenderService) loadDaily() (*models.Daily, error) {
	data, err := os.ReadFile(s.cfg.DailyPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read daily data: %w", err)
	}
	var daily models.Daily
	if err := json.Unmarshal(data, &daily); err != nil {
		return nil, fmt.Errorf("failed to parse daily data: %w", err)
	}
	return &daily, nil
}

// loadTechneme reads the optional techneme sidecar; missing or broken
// files render as the empty-feed placeholder.
func (s *RenderService) loadTechneme() *models.TechnemeFeed {
	feed := &models.TechnemeFeed{}
	data, err := os.ReadFile(s.cfg.DataPath("techneme.json"))
	if err != nil {
		return feed
	}
	_ = json.Unmarshal(data, feed)
	return feed
}

// renderContent builds the page body in its fixed section order.
func (s *RenderService) renderContent(daily *models.Daily, techneme *models.TechnemeFeed) string {
	var parts []string

	parts = append(parts,
		`<section class="section">`,
		`  <h2 class="section-title">🔥 核心看点</h2>`,
		renderItems(daily.Headlines),
		`</section>`,
	)

	parts = append(parts, renderXHighlights(daily.XHighlights))
	parts = append(parts, renderTechneme(techneme.Stories))

	for _, sec := range sectionTitles {
		parts = append(parts,
			`<section class="section">`,
			fmt.Sprintf(`  <h2 class="section-title">%s</h2>`, html.EscapeString(sec.Title)),
			renderItems(daily.Sections[sec.Key]),
			`</section>`,
		)
	}

	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func renderItems(items []models.Item) string {
	var parts []string
	for _, it := range items {
		var lines []string
		lines = append(lines, `<article class="news-item">`)
		if it.Title != "" {
			lines = append(lines, fmt.Sprintf(`  <h3 class="news-title">%s</h3>`, html.EscapeString(it.Title)))
		}
		if it.Time != "" {
			lines = append(lines, fmt.Sprintf(`  <div class="news-meta">%s</div>`, html.EscapeString(it.Time)))
		}
		if it.What != "" {
			lines = append(lines, fmt.Sprintf(`  <div class="news-desc"><strong>事件：</strong>%s</div>`, html.EscapeString(it.What)))
		}
		if it.Why != "" {
			lines = append(lines, fmt.Sprintf(`  <div class="news-desc"><strong>为什么重要：</strong>%s</div>`, html.EscapeString(it.Why)))
		}
		if srcs := renderSources(it.Sources); srcs != "" {
			lines = append(lines, fmt.Sprintf(`  <div class="card-sources">来源：%s</div>`, srcs))
		}
		lines = append(lines, `</article>`)
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n")
}

func renderSources(sources []models.SourceRef) string {
	if len(sources) == 0 {
		return ""
	}
	links := make([]string, 0, len(sources))
	for _, src := range sources {
		name := src.Name
		if name == "" {
			name = "source"
		}
		if src.URL != "" {
			links = append(links, fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`,
				html.EscapeString(src.URL), html.EscapeString(name)))
		} else {
			links = append(links, html.EscapeString(name))
		}
	}
	return strings.Join(links, "、")
}

// renderXHighlights always emits the section so the page layout stays
// stable when the feed is empty.
func renderXHighlights(items []models.XHighlight) string {
	parts := []string{
		`<section class="section">`,
		`  <h2 class="section-title">🔥 X 高互动事件（8-12条）</h2>`,
	}

	if len(items) == 0 {
		parts = append(parts,
			`<div class="news-desc">今日无（或 bird 未配置/抓取失败）。</div>`,
			`</section>`,
		)
		return strings.Join(parts, "\n")
	}

	if len(items) > 12 {
		items = items[:12]
	}
	for _, x := range items {
		parts = append(parts, `<article class="news-item">`)
		parts = append(parts, fmt.Sprintf(
			`  <h3 class="news-title">%s <span style="color: var(--text-secondary); font-weight: 400;">%s</span></h3>`,
			html.EscapeString(x.Author), html.EscapeString(x.Handle)))
		parts = append(parts, fmt.Sprintf(`  <div class="news-desc">%s</div>`, html.EscapeString(x.Text)))

		var eng []string
		if x.Likes != nil {
			eng = append(eng, fmt.Sprintf("❤️ %d", *x.Likes))
		}
		if x.Reposts != nil {
			eng = append(eng, fmt.Sprintf("🔄 %d", *x.Reposts))
		}
		if x.Replies != nil {
			eng = append(eng, fmt.Sprintf("💬 %d", *x.Replies))
		}
		if len(eng) > 0 {
			parts = append(parts, fmt.Sprintf(`  <div class="news-meta">%s</div>`, strings.Join(eng, " | ")))
		}
		if x.URL != "" {
			parts = append(parts, fmt.Sprintf(`  <a class="news-link" href="%s" target="_blank">查看原贴 →</a>`, html.EscapeString(x.URL)))
		}
		parts = append(parts, `</article>`)
	}
	parts = append(parts, `</section>`)
	return strings.Join(parts, "\n")
}

// renderTechneme always emits the section so the page layout stays
// stable when the feed is empty.
func renderTechneme(stories []models.TechnemeStory) string {
	parts := []string{
		`<section class="section">`,
		`  <h2 class="section-title">🌐 TechMeme 当日头条</h2>`,
	}

	if len(stories) == 0 {
		parts = append(parts,
			`<div class="news-desc">今日无（或抓取失败）。</div>`,
			`</section>`,
		)
		return strings.Join(parts, "\n")
	}

	if len(stories) > 5 {
		stories = stories[:5]
	}
	for _, story := range stories {
		parts = append(parts, `<article class="news-item">`)
		parts = append(parts, fmt.Sprintf(`  <h3 class="news-title">%s</h3>`, html.EscapeString(story.Title)))
		if story.Summary != "" {
			parts = append(parts, fmt.Sprintf(`  <div class="news-desc">%s</div>`, html.EscapeString(story.Summary)))
		}
		if story.URL != "" {
			parts = append(parts, fmt.Sprintf(`  <a class="news-link" href="%s" target="_blank">阅读更多 →</a>`, html.EscapeString(story.URL)))
		}
		parts = append(parts, `</article>`)
	}
	parts = append(parts, `</section>`)
	return strings.Join(parts, "\n")
}

// archiveLinks lists the most recent archive pages, newest first.
// Shared with the archive migration, which rebuilds the same nav.
func archiveLinks(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".html"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if len(names) > archiveLinkLimit {
		names = names[:archiveLinkLimit]
	}

	links := make([]string, 0, len(names))
	for _, name := range names {
		links = append(links, fmt.Sprintf(`<a href="./archive/%s.html">%s</a>`, name, name))
	}
	return strings.Join(links, "\n")
}

// dateCN converts "2026-02-06" to "2026年2月6日". Unparseable dates pass
// through unchanged.
func dateCN(date string) string {
	dt, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d年%d月%d日", dt.Year(), int(dt.Month()), dt.Day())
}
