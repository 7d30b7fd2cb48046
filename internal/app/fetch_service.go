package app

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/example/dailyctl/internal/config"
	"github.com/example/dailyctl/internal/models"
)

const fetchUserAgent = "Mozilla/5.0 (compatible; AI-Daily-Report/1.0)"

// SourceSpec is one entry in sources.json.
type SourceSpec struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Enabled bool            `json:"enabled"`
	Config  json.RawMessage `json:"config"`
}

// SourcesConfig is the sources.json document.
type SourcesConfig struct {
	Sources []SourceSpec `json:"sources"`
}

type rssSourceConfig struct {
	URL   string `json:"url"`
	Limit int    `json:"limit"`
}

type hnSourceConfig struct {
	MinScore         int   `json:"min_score"`
	Limit            int   `json:"limit"`
	FetchDescription *bool `json:"fetch_description"`
}

type redditSourceConfig struct {
	Subreddit string `json:"subreddit"`
	Sort      string `json:"sort"`
	Limit     int    `json:"limit"`
}

type trendingSourceConfig struct {
	Language         string `json:"language"`
	Since            string `json:"since"`
	Limit            int    `json:"limit"`
	FetchDescription *bool  `json:"fetch_description"`
}

// FetchService pulls content from the configured sources (RSS, Hacker
// News, Reddit, GitHub trending) and writes the aggregate to
// data/fetched_sources.json. A failing source is reported and skipped;
// it never aborts the run.
type FetchService struct {
	cfg    *config.Config
	client *http.Client
	out    io.Writer

	// Endpoint bases, overridable in tests.
	hnBase       string
	redditBase   string
	trendingBase string
}

// NewFetchService creates a new FetchService reporting progress to out.
func NewFetchService(cfg *config.Config, out io.Writer) *FetchService {
	return &FetchService{
		cfg:          cfg,
		client:       &http.Client{Timeout: 30 * time.Second},
		out:          out,
		hnBase:       "https://hacker-news.firebaseio.com",
		redditBase:   "https://www.reddit.com",
		trendingBase: "https://github.com",
	}
}

// Run fetches every enabled source and writes the results file.
func (s *FetchService) Run(ctx context.Context) (*models.FetchResults, error) {
	data, err := os.ReadFile(s.cfg.SourcesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config: %w", err)
	}
	var sources SourcesConfig
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}

	results := &models.FetchResults{
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Sources:   map[string]*models.SourceResult{},
	}

	for _, src := range sources.Sources {
		if !src.Enabled {
			fmt.Fprintf(s.out, "Skipping disabled source: %s\n", src.ID)
			continue
		}

		fmt.Fprintf(s.out, "Fetching %s (%s)...\n", src.ID, src.Type)

		var (
			items any
			count int
		)
		switch src.Type {
		case "rss":
			got := s.fetchRSS(ctx, src.Config)
			items, count = got, len(got)
		case "hackernews":
			got := s.fetchHackerNews(ctx, src.Config)
			items, count = got, len(got)
		case "reddit":
			got := s.fetchReddit(ctx, src.Config)
			items, count = got, len(got)
		case "github_trending":
			got := s.fetchGithubTrending(ctx, src.Config)
			items, count = got, len(got)
		default:
			fmt.Fprintf(s.out, "  Unknown source type: %s\n", src.Type)
			continue
		}

		results.Sources[src.ID] = &models.SourceResult{Type: src.Type, Count: count, Items: items}
		fmt.Fprintf(s.out, "  Got %d items\n", count)
	}

	if err := s.writeResults(results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *FetchService) writeResults(results *models.FetchResults) error {
	outPath := s.cfg.DataPath("fetched_sources.json")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// rssDoc covers both RSS (<channel><item>) and Atom (<entry>) feeds.
type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
	Entries []atomEntry `xml:"entry"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomEntry struct {
	Title string `xml:"title"`
	Links []struct {
		Href string `xml:"href,attr"`
	} `xml:"link"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
}

func (s *FetchService) fetchRSS(ctx context.Context, raw json.RawMessage) []models.NewsItem {
	var rc rssSourceConfig
	_ = json.Unmarshal(raw, &rc)
	if rc.URL == "" {
		return nil
	}
	if rc.Limit <= 0 {
		rc.Limit = 10
	}

	fmt.Fprintf(s.out, "  Fetching RSS: %s\n", rc.URL)
	body, err := s.fetchURL(ctx, rc.URL)
	if err != nil {
		fmt.Fprintf(s.out, "  Error fetching %s: %v\n", rc.URL, err)
		return nil
	}

	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		fmt.Fprintf(s.out, "  Error parsing RSS: %v\n", err)
		return nil
	}

	var items []models.NewsItem
	for _, it := range doc.Channel.Items {
		if len(items) >= rc.Limit {
			break
		}
		title := strings.TrimSpace(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       title,
			URL:         link,
			Description: truncate(strings.TrimSpace(it.Description), 300),
			Published:   strings.TrimSpace(it.PubDate),
		})
	}
	for _, e := range doc.Entries {
		if len(items) >= rc.Limit {
			break
		}
		title := strings.TrimSpace(e.Title)
		link := ""
		if len(e.Links) > 0 {
			link = strings.TrimSpace(e.Links[0].Href)
		}
		if title == "" || link == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       title,
			URL:         link,
			Description: truncate(strings.TrimSpace(e.Summary), 300),
			Published:   strings.TrimSpace(e.Published),
		})
	}
	return items
}

func (s *FetchService) fetchHackerNews(ctx context.Context, raw json.RawMessage) []models.HNStory {
	var hc hnSourceConfig
	_ = json.Unmarshal(raw, &hc)
	if hc.MinScore <= 0 {
		hc.MinScore = 100
	}
	if hc.Limit <= 0 {
		hc.Limit = 10
	}
	fetchDesc := hc.FetchDescription == nil || *hc.FetchDescription

	fmt.Fprintf(s.out, "  Fetching HN: min_score=%d\n", hc.MinScore)

	var storyIDs []int64
	if err := s.fetchJSON(ctx, s.hnBase+"/v0/topstories.json", &storyIDs); err != nil {
		fmt.Fprintf(s.out, "  Error fetching HN top stories: %v\n", err)
		return nil
	}

	// Check the top 30 to find enough qualifying stories.
	if len(storyIDs) > 30 {
		storyIDs = storyIDs[:30]
	}

	var items []models.HNStory
	for _, sid := range storyIDs {
		if len(items) >= hc.Limit {
			break
		}

		var story struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			Score int    `json:"score"`
			By    string `json:"by"`
			Time  int64  `json:"time"`
		}
		url := fmt.Sprintf("%s/v0/item/%d.json", s.hnBase, sid)
		if err := s.fetchJSON(ctx, url, &story); err != nil {
			continue
		}
		if story.Score < hc.MinScore || story.URL == "" {
			continue
		}

		item := models.HNStory{
			Title:    story.Title,
			URL:      story.URL,
			Score:    story.Score,
			By:       story.By,
			Time:     time.Unix(story.Time, 0).UTC().Format(time.RFC3339),
			Comments: fmt.Sprintf("https://news.ycombinator.com/item?id=%d", sid),
		}
		if fetchDesc {
			if body, err := s.fetchURL(ctx, item.URL); err == nil {
				item.Description = truncate(extractDescription(body), 300)
			}
		}
		items = append(items, item)
	}
	return items
}

func (s *FetchService) fetchReddit(ctx context.Context, raw json.RawMessage) []models.RedditPost {
	var rc redditSourceConfig
	_ = json.Unmarshal(raw, &rc)
	if rc.Subreddit == "" {
		rc.Subreddit = "all"
	}
	if rc.Sort == "" {
		rc.Sort = "hot"
	}
	if rc.Limit <= 0 {
		rc.Limit = 10
	}

	fmt.Fprintf(s.out, "  Fetching Reddit: r/%s, sort=%s\n", rc.Subreddit, rc.Sort)

	var listing struct {
		Data struct {
			Children []struct {
				Data struct {
					Title       string `json:"title"`
					URL         string `json:"url"`
					Score       int    `json:"score"`
					Author      string `json:"author"`
					Subreddit   string `json:"subreddit"`
					NumComments int    `json:"num_comments"`
					Permalink   string `json:"permalink"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/r/%s/%s.json?limit=%d", s.redditBase, rc.Subreddit, rc.Sort, rc.Limit*2)
	if err := s.fetchJSON(ctx, url, &listing); err != nil {
		fmt.Fprintf(s.out, "  Error fetching Reddit: %v\n", err)
		return nil
	}

	var items []models.RedditPost
	for _, child := range listing.Data.Children {
		if len(items) >= rc.Limit {
			break
		}
		post := child.Data
		if post.Score < 50 {
			continue
		}
		items = append(items, models.RedditPost{
			Title:       post.Title,
			URL:         post.URL,
			Score:       post.Score,
			Author:      post.Author,
			Subreddit:   post.Subreddit,
			NumComments: post.NumComments,
			Permalink:   "https://reddit.com" + post.Permalink,
		})
	}
	return items
}

func (s *FetchService) fetchGithubTrending(ctx context.Context, raw json.RawMessage) []models.TrendingRepo {
	var tc trendingSourceConfig
	_ = json.Unmarshal(raw, &tc)
	if tc.Since == "" {
		tc.Since = "daily"
	}
	if tc.Limit <= 0 {
		tc.Limit = 5
	}
	fetchDesc := tc.FetchDescription == nil || *tc.FetchDescription

	fmt.Fprintf(s.out, "  Fetching GitHub Trending: lang=%s, since=%s\n", orAll(tc.Language), tc.Since)

	// No official API for trending; scrape the page.
	url := fmt.Sprintf("%s/trending/%s?since=%s", s.trendingBase, tc.Language, tc.Since)
	body, err := s.fetchURL(ctx, url)
	if err != nil {
		fmt.Fprintf(s.out, "  Error fetching trending page: %v\n", err)
		return nil
	}

	repos := parseTrendingPage(body)
	if len(repos) > tc.Limit {
		repos = repos[:tc.Limit]
	}

	if fetchDesc {
		for i := range repos {
			if repos[i].Description != "" {
				continue
			}
			if page, err := s.fetchURL(ctx, repos[i].URL); err == nil {
				repos[i].Description = truncate(extractDescription(page), 300)
			}
		}
	}
	return repos
}

func orAll(lang string) string {
	if lang == "" {
		return "all"
	}
	return lang
}

// fetchURL fetches a URL with the pipeline's user agent.
func (s *FetchService) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (s *FetchService) fetchJSON(ctx context.Context, url string, target any) error {
	body, err := s.fetchURL(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, target)
}

// truncate limits a string to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

var collapseSpaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(collapseSpaceRe.ReplaceAllString(s, " "))
}
