package extractor

import (
	"encoding/json"
	"net/url"
	"regexp"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
)

const (
	weiboBase     = "https://weibo.com"
	weiboMinTitle = 2
	weiboMaxTitle = 50
)

// 热搜页 HTML 备用结构
var weiboHotTopicRe = regexp.MustCompile(`(?s)<a\s+href="(.*?)".*?class="HotTopic_tit.*?">(.*?)</a>`)

// NewWeibo 构造微博热搜源：侧边栏热搜接口优先，页面解析兜底。
func NewWeibo(ua string) *Source {
	return &Source{
		Name:        "微博热搜",
		Home:        "https://s.weibo.com/top/summary",
		Count:       3,
		PrependHome: true,
		Attempts: []Attempt{
			{
				Request:    Request{URL: weiboBase + "/ajax/side/hotSearch", Profile: jsonProfile(ua, weiboBase+"/")},
				Strategies: []Strategy{extractWeiboAPI},
			},
			{
				Request:    Request{URL: weiboBase + "/hot/search", Profile: htmlProfile(ua)},
				Strategies: []Strategy{extractWeiboHTML},
			},
		},
	}
}

// extractWeiboAPI 解析 /ajax/side/hotSearch 返回的实时热搜词。
// 接口只给词条，搜索落地页自己拼。
func extractWeiboAPI(raw string, limit int) []news.Item {
	var resp struct {
		Data struct {
			Realtime []struct {
				Word string `json:"word"`
			} `json:"realtime"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}

	now := news.Clock(time.Now())
	var items []news.Item
	for _, r := range resp.Data.Realtime {
		if len(items) >= limit {
			break
		}
		title, ok := cleanTitle(r.Word, weiboMinTitle, weiboMaxTitle)
		if !ok {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   "https://s.weibo.com/weibo?q=" + url.QueryEscape(title),
		})
	}
	return items
}

func extractWeiboHTML(raw string, limit int) []news.Item {
	now := news.Clock(time.Now())
	var items []news.Item
	for _, m := range weiboHotTopicRe.FindAllStringSubmatch(raw, -1) {
		if len(items) >= limit {
			break
		}
		title, ok := cleanTitle(m[2], weiboMinTitle, weiboMaxTitle)
		if !ok {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   absoluteURL(weiboBase, m[1]),
		})
	}
	return items
}
