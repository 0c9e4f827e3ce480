package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
	"github.com/PuerkitoBio/goquery"
)

const (
	githubBase     = "https://github.com"
	githubMinTitle = 3
	githubMaxTitle = 100
)

// n8n 时代的正则版解析，留作第三层兜底
var (
	githubArticleRe = regexp.MustCompile(`(?s)<article class="Box-row">.*?</article>`)
	githubTitleRe   = regexp.MustCompile(`(?s)<h2 class="h3 lh-condensed">.*?<a[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	githubDescRe    = regexp.MustCompile(`(?s)<p class="col-9 color-fg-muted my-1 pr-4">(.*?)</p>`)
)

// NewGitHubTrending 构造 GitHub 趋势源。
// Trending 页的标记改版过多次：当前 h2 结构 goquery 主解析，
// 老版 h1 结构次之，最后退回纯正则。
func NewGitHubTrending(ua string) *Source {
	return &Source{
		Name:        "GitHub趋势",
		Home:        githubBase + "/trending",
		Count:       6,
		PrependHome: true,
		Attempts: []Attempt{
			{
				Request: Request{URL: githubBase + "/trending", Profile: htmlProfile(ua)},
				Strategies: []Strategy{
					githubDOMStrategy("article.Box-row", "h2 a"),
					githubDOMStrategy("article.Box-row", "h1.h3 a"),
					extractGitHubRegex,
				},
			},
		},
	}
}

// githubDOMStrategy 用 goquery 遍历仓库卡片，标题拼成 owner/name: 描述。
func githubDOMStrategy(cardSel, titleSel string) Strategy {
	return func(raw string, limit int) []news.Item {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
		if err != nil {
			return nil
		}

		now := news.Clock(time.Now())
		var items []news.Item
		doc.Find(cardSel).EachWithBreak(func(_ int, card *goquery.Selection) bool {
			if len(items) >= limit {
				return false
			}
			link := card.Find(titleSel).First()
			href, ok := link.Attr("href")
			if !ok {
				return true
			}
			repo := collapseSpaces(link.Text())
			repo = strings.ReplaceAll(repo, " / ", "/")
			desc := collapseSpaces(card.Find("p").First().Text())

			full := repo
			if desc != "" {
				full = repo + ": " + desc
			}
			title, ok2 := cleanTitle(full, githubMinTitle, githubMaxTitle)
			if !ok2 {
				return true
			}
			items = append(items, news.Item{
				Title: title,
				Time:  now,
				Url:   absoluteURL(githubBase, href),
			})
			return true
		})
		return items
	}
}

// extractGitHubRegex 按 Box-row 块切片后逐块正则提取，兼容历史标记版本。
func extractGitHubRegex(raw string, limit int) []news.Item {
	now := news.Clock(time.Now())
	var items []news.Item
	for _, block := range githubArticleRe.FindAllString(raw, -1) {
		if len(items) >= limit {
			break
		}
		tm := githubTitleRe.FindStringSubmatch(block)
		if tm == nil {
			continue
		}
		repo := collapseSpaces(stripTags(tm[2]))
		repo = strings.ReplaceAll(repo, " / ", "/")

		desc := ""
		if dm := githubDescRe.FindStringSubmatch(block); dm != nil {
			desc = collapseSpaces(stripTags(dm[1]))
		}

		full := repo
		if desc != "" {
			full = repo + ": " + desc
		}
		title, ok := cleanTitle(full, githubMinTitle, githubMaxTitle)
		if !ok {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   absoluteURL(githubBase, tm[1]),
		})
	}
	return items
}
