package extractor

import (
	"encoding/json"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
)

const (
	gitcodeBase     = "https://gitcode.com"
	gitcodeAPI      = "https://web-api.gitcode.com/api/v1/agg/index?page=1&per_page=10&m_code=dynamics&d_code=industry_news&channel_id=67bc3f5f97a0293d6bfebd01&c_id=67bc3f5f97a0293d6bfebd01"
	gitcodeMinTitle = 3
	gitcodeMaxTitle = 100
)

// NewGitCode 构造 GitCode 行业动态源，纯 JSON 接口，无页面解析。
func NewGitCode(ua string) *Source {
	p := jsonProfile(ua, gitcodeBase+"/")
	p.Extra = map[string]string{
		"origin":        gitcodeBase,
		"x-app-channel": "gitcode-fe",
		"x-platform":    "web",
	}
	return &Source{
		Name:        "GitCode动态",
		Home:        gitcodeBase + "/dynamics",
		Count:       6,
		PrependHome: true,
		Attempts: []Attempt{
			{
				Request:    Request{URL: gitcodeAPI, Profile: p},
				Strategies: []Strategy{extractGitCode},
			},
		},
	}
}

// extractGitCode 解析聚合接口：优先用行业动态的标题与发布时间，
// 条目缺标题时退回项目名+简介；链接始终取项目主页。
func extractGitCode(raw string, limit int) []news.Item {
	var resp struct {
		Content []struct {
			IndustryNews *struct {
				Title       string `json:"title"`
				PublishTime string `json:"publish_time"`
			} `json:"industry_news"`
			ProjectInfo *struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				WebURL      string `json:"web_url"`
			} `json:"project_info"`
		} `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}

	fallbackClock := news.Clock(time.Now())
	var items []news.Item
	for _, c := range resp.Content {
		if len(items) >= limit {
			break
		}

		title := ""
		clock := fallbackClock
		if c.IndustryNews != nil {
			title = c.IndustryNews.Title
			if t, err := time.Parse(time.RFC3339, c.IndustryNews.PublishTime); err == nil {
				clock = news.Clock(t)
			}
		}
		if title == "" && c.ProjectInfo != nil && c.ProjectInfo.Name != "" {
			title = c.ProjectInfo.Name
			if desc := c.ProjectInfo.Description; desc != "" {
				title = title + ": " + truncateRunes(desc, 47)
			}
		}

		itemURL := ""
		if c.ProjectInfo != nil {
			itemURL = c.ProjectInfo.WebURL
		}

		clean, ok := cleanTitle(title, gitcodeMinTitle, gitcodeMaxTitle)
		if !ok || itemURL == "" {
			continue
		}
		items = append(items, news.Item{Title: clean, Time: clock, Url: itemURL})
	}
	return items
}
