package extractor

import (
	"regexp"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
)

const (
	ithomeBase     = "https://www.ithome.com"
	ithomeMinTitle = 5
	ithomeMaxTitle = 100
)

// 首页文章链接的两代路径格式
var (
	ithomeLegacyRe = regexp.MustCompile(`(?s)<a\s+href="(https://www\.ithome\.com/\d+/.*?)".*?>(.*?)</a>`)
	ithomeZeroRe   = regexp.MustCompile(`(?s)<a[^>]*href="(https://www\.ithome\.com/0/\d+/[^"]+)"[^>]*>(.*?)</a>`)
)

// NewITHome 构造 IT 之家头条源：直接解析首页文章链接，无备用端点。
func NewITHome(ua string) *Source {
	return &Source{
		Name:        "IT之家",
		Home:        ithomeBase + "/",
		Count:       4,
		PrependHome: true,
		Attempts: []Attempt{
			{
				Request: Request{URL: ithomeBase + "/", Profile: htmlProfile(ua)},
				Strategies: []Strategy{
					ithomeRegexStrategy(ithomeLegacyRe),
					ithomeRegexStrategy(ithomeZeroRe),
				},
			},
		},
	}
}

func ithomeRegexStrategy(re *regexp.Regexp) Strategy {
	return func(raw string, limit int) []news.Item {
		now := news.Clock(time.Now())
		seen := make(map[string]bool)
		var items []news.Item
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			if len(items) >= limit {
				break
			}
			title, ok := cleanTitle(m[2], ithomeMinTitle, ithomeMaxTitle)
			if !ok || seen[m[1]] {
				continue
			}
			seen[m[1]] = true
			items = append(items, news.Item{Title: title, Time: now, Url: m[1]})
		}
		return items
	}
}
