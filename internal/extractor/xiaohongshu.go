package extractor

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
)

const (
	xhsBase     = "https://www.xiaohongshu.com"
	xhsFeedAPI  = "https://edith.xiaohongshu.com/api/sns/web/v1/homefeed"
	xhsMinTitle = 2
	xhsMaxTitle = 50
)

// 发现页笔记卡片结构。标题 span 带 data-v- 属性且不含子标签，
// 用 [^<]+ 匹配正文，天然排除 svg 图标这类嵌套内容。
var (
	xhsNoteCardRe = regexp.MustCompile(`(?s)<section class="note-item".*?</section>`)
	xhsTitleRe    = regexp.MustCompile(`<span[^>]*data-v-[^>]*>([^<]+)</span>`)
	xhsURLRe      = regexp.MustCompile(`href="(/explore/[^"?]*)`)
)

// NewXiaohongshu 构造小红书发现页源：页面卡片解析优先，homefeed 接口兜底。
func NewXiaohongshu(ua string) *Source {
	feedReq := Request{
		Method:      http.MethodPost,
		URL:         xhsFeedAPI,
		Body:        []byte(`{"cursor_score":"","num":20,"refresh_type":1,"note_index":0}`),
		ContentType: "application/json",
		Profile:     jsonProfile(ua, xhsBase+"/"),
	}
	return &Source{
		Name:        "小红书",
		Home:        xhsBase + "/explore",
		Count:       5,
		PrependHome: true,
		Attempts: []Attempt{
			{
				Request:    Request{URL: xhsBase + "/explore", Profile: htmlProfile(ua)},
				Strategies: []Strategy{extractXiaohongshuHTML},
			},
			{
				Request:    feedReq,
				Strategies: []Strategy{extractXiaohongshuFeed},
			},
		},
	}
}

func extractXiaohongshuHTML(raw string, limit int) []news.Item {
	now := news.Clock(time.Now())
	var items []news.Item
	for _, card := range xhsNoteCardRe.FindAllString(raw, -1) {
		if len(items) >= limit {
			break
		}
		tm := xhsTitleRe.FindStringSubmatch(card)
		um := xhsURLRe.FindStringSubmatch(card)
		if tm == nil || um == nil {
			continue
		}
		title, ok := cleanTitle(tm[1], xhsMinTitle, xhsMaxTitle)
		if !ok {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   absoluteURL(xhsBase, um[1]),
		})
	}
	return items
}

// extractXiaohongshuFeed 解析 homefeed 接口的笔记流。
func extractXiaohongshuFeed(raw string, limit int) []news.Item {
	var resp struct {
		Data struct {
			Items []struct {
				ID       string `json:"id"`
				NoteCard struct {
					DisplayTitle string `json:"display_title"`
				} `json:"note_card"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}

	now := news.Clock(time.Now())
	var items []news.Item
	for _, it := range resp.Data.Items {
		if len(items) >= limit {
			break
		}
		title, ok := cleanTitle(it.NoteCard.DisplayTitle, xhsMinTitle, xhsMaxTitle)
		if !ok || it.ID == "" {
			continue
		}
		items = append(items, news.Item{
			Title: title,
			Time:  now,
			Url:   xhsBase + "/explore/" + it.ID,
		})
	}
	return items
}
