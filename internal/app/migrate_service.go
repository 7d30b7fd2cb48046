package app

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/example/dailyctl/internal/config"
)

var (
	containerRe      = regexp.MustCompile(`(?s)<div\s+class="container">\s*(.+?)\s*</div>\s*</body>`)
	headerRe         = regexp.MustCompile(`(?s)<header>.*?</header>`)
	pageTitleRe      = regexp.MustCompile(`(?s)<div\s+class="page-title">.*?</div>`)
	footerRe         = regexp.MustCompile(`(?s)<footer>.*?</footer>`)
	archiveNavRe     = regexp.MustCompile(`(?s)<(?:section|div)\s+class="archive"[^>]*>.*?</(?:section|div)>`)
	bareSectionRe    = regexp.MustCompile(`<section(\s*)>`)
	fontFamilyRe     = regexp.MustCompile(`style="[^"]*font-family[^"]*"`)
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
)

// legacyClassMap normalizes old archive markup to the current template's
// class vocabulary.
var legacyClassMap = [][2]string{
	{`class="check-section"`, `class="highlight-box"`},
	{`class="check-title"`, `class="highlight-title"`},
	{`class="check-list"`, `class="highlight-list"`},
	{`class="dedupe-list"`, `class="highlight-box"`},
	{`class="x-card"`, `class="card"`},
	{`class="x-header"`, `class="card-meta"`},
	{`class="x-name"`, `class="x-author"`},
	{`class="x-stats"`, `class="x-engagement"`},
	{`class="news-source"`, `class="card-sources"`},
	{`class="news-sources"`, `class="card-sources"`},
	{`class="news-tag"`, `class="tag"`},
	{`class="tag highlight"`, `class="tag tag-hot"`},
}

// MigrateStats summarizes one migration run.
type MigrateStats struct {
	Migrated int
	Skipped  int
	Failed   int
}

// pageRenderer regenerates the homepage after a migration rewrote the
// archives it links to.
type pageRenderer interface {
	Run() (string, error)
}

// MigrateService rewrites legacy archive pages into the current page
// template. The newest archive is skipped since the renderer already
// wrote it in the current style. This is the only component that
// mutates archive files.
type MigrateService struct {
	cfg      *config.Config
	renderer pageRenderer
	out      io.Writer
}

// NewMigrateService creates a new MigrateService.
func NewMigrateService(cfg *config.Config, renderer pageRenderer, out io.Writer) *MigrateService {
	return &MigrateService{cfg: cfg, renderer: renderer, out: out}
}

// Run migrates all legacy archives. With dryRun nothing is written.
func (s *MigrateService) Run(dryRun bool) (*MigrateStats, error) {
	tplData, err := os.ReadFile(s.cfg.TemplatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	names, err := s.listArchives()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no archive files found")
	}

	// The highest date was rendered by the current template already.
	newest := names[len(names)-1]
	fmt.Fprintf(s.out, "Found %d archive files, skipping %s (already current)\n", len(names), newest)

	stats := &MigrateStats{}
	for _, name := range names {
		if name == newest {
			stats.Skipped++
			continue
		}
		if err := s.migrateFile(name, string(tplData), dryRun); err != nil {
			fmt.Fprintf(s.out, "  %s: %v\n", name, err)
			stats.Failed++
			continue
		}
		stats.Migrated++
	}

	if !dryRun && s.renderer != nil {
		// Homepage carries the archive nav; regenerate it to match.
		if _, err := s.renderer.Run(); err != nil {
			fmt.Fprintf(s.out, "homepage re-render failed: %v\n", err)
		}
	}

	return stats, nil
}

func (s *MigrateService) migrateFile(date, template string, dryRun bool) error {
	path := s.cfg.ArchivePath(date)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	content := extractArchiveBody(string(data))
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("no content extracted")
	}
	content = normalizeLegacyMarkup(content)

	page := template
	page = strings.ReplaceAll(page, "{{DATE}}", html.EscapeString(date))
	page = strings.ReplaceAll(page, "{{DATE_CN}}", html.EscapeString(dateCN(date)))
	page = strings.ReplaceAll(page, "{{CONTENT}}", content)
	page = strings.ReplaceAll(page, "{{ARCHIVE_LINKS}}", archiveLinks(s.cfg.ArchiveDirPath()))

	if dryRun {
		fmt.Fprintf(s.out, "  %s: would write %d bytes\n", date, len(page))
		return nil
	}

	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	fmt.Fprintf(s.out, "  %s: written %d bytes\n", date, len(page))
	return nil
}

// listArchives returns the dated archive basenames in ascending order.
func (s *MigrateService) listArchives() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.ArchiveDirPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read archive dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".html")
		if !dateRe.MatchString(stem) {
			continue
		}
		names = append(names, stem)
	}
	sort.Strings(names)
	return names, nil
}

// extractArchiveBody pulls the news sections out of a legacy page,
// dropping the old header, page title, footer, and archive nav.
func extractArchiveBody(page string) string {
	m := containerRe.FindStringSubmatch(page)
	if m == nil {
		return ""
	}

	content := m[1]
	content = headerRe.ReplaceAllString(content, "")
	content = pageTitleRe.ReplaceAllString(content, "")
	content = footerRe.ReplaceAllString(content, "")
	content = archiveNavRe.ReplaceAllString(content, "")
	content = excessNewlinesRe.ReplaceAllString(strings.TrimSpace(content), "\n\n")
	return content
}

// normalizeLegacyMarkup maps old class names onto the current template
// vocabulary and strips conflicting inline font styles.
func normalizeLegacyMarkup(content string) string {
	content = bareSectionRe.ReplaceAllString(content, `<section class="section">`)
	content = strings.ReplaceAll(content, `class="news-item"`, `class="card"`)
	content = strings.ReplaceAll(content, `class="news-title"`, `class="card-title"`)
	content = strings.ReplaceAll(content, `class="news-desc"`, `class="card-content"`)
	content = strings.ReplaceAll(content, `class="news-time"`, `class="card-meta"`)
	for _, pair := range legacyClassMap {
		content = strings.ReplaceAll(content, pair[0], pair[1])
	}
	content = fontFamilyRe.ReplaceAllString(content, "")
	return content
}
