package models

// NewsItem is an entry fetched from an RSS/Atom feed.
type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Published   string `json:"published"`
}

// HNStory is a qualifying Hacker News top story.
type HNStory struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	By          string `json:"by"`
	Time        string `json:"time"`
	Comments    string `json:"comments"`
	Description string `json:"description"`
}

// RedditPost is a qualifying subreddit listing entry.
type RedditPost struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit"`
	NumComments int    `json:"num_comments"`
	Permalink   string `json:"permalink"`
}

// TrendingRepo is a repository scraped from the GitHub trending page.
type TrendingRepo struct {
	Repo        string `json:"repo"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	StarsToday  string `json:"stars_today"`
	Language    string `json:"language"`
}

// SourceResult holds the items fetched from one configured source.
// Items is one of []NewsItem, []HNStory, []RedditPost, []TrendingRepo
// depending on the source type.
type SourceResult struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Items any    `json:"items"`
}

// FetchResults is the aggregate written to data/fetched_sources.json.
type FetchResults struct {
	FetchedAt string                   `json:"fetched_at"`
	Sources   map[string]*SourceResult `json:"sources"`
}
