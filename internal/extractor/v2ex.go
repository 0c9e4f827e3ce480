package extractor

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
)

const (
	v2exBase     = "https://www.v2ex.com"
	v2exMinTitle = 3
	v2exMaxTitle = 100
)

// 主结构：当前热门页的 item_title 结构
var v2exItemTitleRe = regexp.MustCompile(`(?s)<span class="item_title">.*?<a href="(.*?)".*?>(.*?)</a></span>`)

// 次结构：历史上出现过的 topic-link 变体
var v2exTopicLinkRe = regexp.MustCompile(`(?s)<span\s+class="topic-link">.*?<a\s+href="(.*?)".*?>(.*?)</a></span>`)

// 兜底结构：任何指向帖子详情页的链接
var v2exGenericRe = regexp.MustCompile(`(?s)<a href="(/t/\d+[^"]*)"[^>]*>(.*?)</a>`)

// NewV2EX 构造 V2EX 热门话题源：
// 热门页三层正则依次尝试，全部落空再换官方 JSON 接口。
func NewV2EX(ua string) *Source {
	return &Source{
		Name:        "V2EX热门",
		Home:        v2exBase + "/?tab=hot",
		Count:       8,
		PrependHome: true,
		Attempts: []Attempt{
			{
				Request: Request{URL: v2exBase + "/?tab=hot", Profile: htmlProfile(ua)},
				Strategies: []Strategy{
					v2exRegexStrategy(v2exItemTitleRe),
					v2exRegexStrategy(v2exTopicLinkRe),
					v2exRegexStrategy(v2exGenericRe),
				},
			},
			{
				Request:    Request{URL: v2exBase + "/api/topics/hot.json", Profile: jsonProfile(ua, v2exBase+"/")},
				Strategies: []Strategy{extractV2EXAPI},
			},
		},
	}
}

func v2exRegexStrategy(re *regexp.Regexp) Strategy {
	return func(raw string, limit int) []news.Item {
		now := news.Clock(time.Now())
		var items []news.Item
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			if len(items) >= limit {
				break
			}
			title, ok := cleanTitle(m[2], v2exMinTitle, v2exMaxTitle)
			if !ok {
				continue
			}
			items = append(items, news.Item{
				Title: title,
				Time:  now,
				Url:   absoluteURL(v2exBase, m[1]),
			})
		}
		return items
	}
}

// extractV2EXAPI 解析官方热门话题接口 /api/topics/hot.json。
func extractV2EXAPI(raw string, limit int) []news.Item {
	var topics []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil
	}

	now := news.Clock(time.Now())
	var items []news.Item
	for _, t := range topics {
		if len(items) >= limit {
			break
		}
		title, ok := cleanTitle(t.Title, v2exMinTitle, v2exMaxTitle)
		if !ok || t.URL == "" {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   absoluteURL(v2exBase, t.URL),
		})
	}
	return items
}
