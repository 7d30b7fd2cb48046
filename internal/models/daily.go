// Package models contains the report data structures shared by the
// pipeline stages (fetch, render, validate).
package models

// SourceRef is a single attribution link on a report item.
type SourceRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Item is a single news entry in the daily report.
type Item struct {
	Title   string      `json:"title"`
	Time    string      `json:"time"` // YYYY-MM-DD
	What    string      `json:"what"`
	Why     string      `json:"why"`
	Sources []SourceRef `json:"sources"`
}

// XHighlight is a high-engagement X/Twitter post.
// Engagement counts are pointers so "absent" and "zero" stay distinct.
type XHighlight struct {
	Author  string `json:"author"`
	Handle  string `json:"handle"`
	Text    string `json:"text"`
	URL     string `json:"url"`
	Likes   *int   `json:"likes,omitempty"`
	Reposts *int   `json:"reposts,omitempty"`
	Replies *int   `json:"replies,omitempty"`
}

// Summary is the report-level recap block.
type Summary struct {
	Bullets    []string `json:"bullets"`
	URL        string   `json:"url"`
	ArchiveURL string   `json:"archiveUrl"`
}

// Daily is the full daily report read from data/daily.json.
type Daily struct {
	Date        string            `json:"date"`
	Headlines   []Item            `json:"headlines"`
	Sections    map[string][]Item `json:"sections"`
	XHighlights []XHighlight      `json:"x_highlights,omitempty"`
	Summary     *Summary          `json:"summary,omitempty"`
	SelfCheck   map[string]any    `json:"self_check,omitempty"`
}

// RequiredSections are the section keys every daily report must carry,
// in render order. Empty lists are allowed; missing keys are not.
var RequiredSections = []string{"releases", "updates", "opensource", "benchmarks", "business", "risks"}

// TechnemeStory is one headline from the techneme feed.
type TechnemeStory struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
}

// TechnemeFeed is the optional data/techneme.json sidecar.
type TechnemeFeed struct {
	Stories []TechnemeStory `json:"stories"`
}
