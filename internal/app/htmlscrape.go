package app

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/example/dailyctl/internal/models"
)

var starsTodayRe = regexp.MustCompile(`([0-9,]+)\s*stars?\s+today`)

// parseTrendingPage extracts repositories from the GitHub trending page.
// Each repo is an <article class="Box-row">.
func parseTrendingPage(body []byte) []models.TrendingRepo {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var repos []models.TrendingRepo
	walkNodes(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "article" || !hasClass(n, "Box-row") {
			return
		}
		if repo, ok := parseTrendingArticle(n); ok {
			repos = append(repos, repo)
		}
	})
	return repos
}

func parseTrendingArticle(article *html.Node) (models.TrendingRepo, bool) {
	var repo models.TrendingRepo

	// Repo path lives in the h2 heading link.
	walkNodes(article, func(n *html.Node) {
		if repo.Repo != "" || n.Type != html.ElementNode || n.Data != "h2" {
			return
		}
		walkNodes(n, func(a *html.Node) {
			if repo.Repo != "" || a.Type != html.ElementNode || a.Data != "a" {
				return
			}
			path := strings.Trim(attrVal(a, "href"), "/")
			if path == "" || strings.HasPrefix(path, "login") || strings.HasPrefix(path, "sponsors") {
				return
			}
			repo.Repo = path
		})
	})
	if repo.Repo == "" {
		return repo, false
	}

	parts := strings.Split(repo.Repo, "/")
	repo.Name = parts[len(parts)-1]
	repo.URL = "https://github.com/" + repo.Repo

	walkNodes(article, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch {
		case n.Data == "p" && hasClass(n, "col-9") && repo.Description == "":
			repo.Description = collapseSpace(nodeText(n))
		case n.Data == "span" && attrVal(n, "itemprop") == "programmingLanguage":
			repo.Language = strings.TrimSpace(nodeText(n))
		}
	})

	if m := starsTodayRe.FindStringSubmatch(nodeText(article)); m != nil {
		repo.StarsToday = strings.ReplaceAll(m[1], ",", "")
	} else {
		repo.StarsToday = "0"
	}

	return repo, true
}

// extractDescription pulls a page description from meta tags, preferring
// og:description for quality.
func extractDescription(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var ogDesc, metaDesc string
	walkNodes(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "meta" {
			return
		}
		content := strings.TrimSpace(attrVal(n, "content"))
		if content == "" {
			return
		}
		if attrVal(n, "property") == "og:description" && ogDesc == "" {
			ogDesc = content
		}
		if attrVal(n, "name") == "description" && metaDesc == "" {
			metaDesc = content
		}
	})

	if ogDesc != "" {
		return ogDesc
	}
	return metaDesc
}

// walkNodes visits n and all its descendants.
func walkNodes(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, fn)
	}
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// nodeText concatenates all text content under a node.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	walkNodes(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
