package extractor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
)

const (
	zhihuBase     = "https://www.zhihu.com"
	zhihuHotAPI   = zhihuBase + "/api/v3/feed/topstory/hot-lists/total?limit=50&desktop=true"
	zhihuMinTitle = 3
	zhihuMaxTitle = 100
)

// 热榜页 HTML 备用结构：标题在 h2，链接在随后的 HotItem-content
var zhihuHotItemRe = regexp.MustCompile(`(?s)<h2\s+class="HotItem-title">(.*?)</h2>.*?<a\s+class="HotItem-content"\s+href="(.*?)"`)

// NewZhihu 构造知乎热榜源：官方热榜接口优先，热榜页解析兜底。
func NewZhihu(ua string) *Source {
	p := jsonProfile(ua, zhihuBase+"/hot")
	p.Extra = map[string]string{"x-requested-with": "fetch"}
	return &Source{
		Name:        "知乎热榜",
		Home:        zhihuBase + "/hot",
		Count:       4,
		PrependHome: true,
		Attempts: []Attempt{
			{
				Request:    Request{URL: zhihuHotAPI, Profile: p},
				Strategies: []Strategy{extractZhihuAPI},
			},
			{
				Request:    Request{URL: zhihuBase + "/hot", Profile: htmlProfile(ua)},
				Strategies: []Strategy{extractZhihuHTML},
			},
		},
	}
}

// extractZhihuAPI 解析热榜接口。接口结构固定，按已知 schema 显式取字段，
// 不做动态 JSON 导航。
func extractZhihuAPI(raw string, limit int) []news.Item {
	var resp struct {
		Data []struct {
			Target struct {
				ID    int64  `json:"id"`
				Title string `json:"title"`
			} `json:"target"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}

	now := news.Clock(time.Now())
	var items []news.Item
	for _, d := range resp.Data {
		if len(items) >= limit {
			break
		}
		title, ok := cleanTitle(d.Target.Title, zhihuMinTitle, zhihuMaxTitle)
		if !ok || d.Target.ID == 0 {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   fmt.Sprintf("%s/question/%d", zhihuBase, d.Target.ID),
		})
	}
	return items
}

func extractZhihuHTML(raw string, limit int) []news.Item {
	now := news.Clock(time.Now())
	var items []news.Item
	for _, m := range zhihuHotItemRe.FindAllStringSubmatch(raw, -1) {
		if len(items) >= limit {
			break
		}
		title, ok := cleanTitle(m[1], zhihuMinTitle, zhihuMaxTitle)
		if !ok {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   absoluteURL(zhihuBase, m[2]),
		})
	}
	return items
}
