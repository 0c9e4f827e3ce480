package extractor

import (
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/LJTian/NewsNow/internal/fetcher"
	"github.com/LJTian/NewsNow/internal/news"
)

// Getter 是解析链需要的最小抓取能力，由 fetcher.Client 实现；测试里用桩替代。
type Getter interface {
	Get(rawURL string, p fetcher.HeaderProfile) (string, error)
	PostRaw(rawURL string, body []byte, contentType string, p fetcher.HeaderProfile) (string, error)
}

// Request 描述一次候选抓取：主端点或备用端点。
type Request struct {
	Method      string // 空值按 GET 处理
	URL         string
	Body        []byte
	ContentType string
	Profile     fetcher.HeaderProfile
}

// Strategy 是一条纯解析策略：输入原始响应，按文档顺序最多产出 limit 条。
// 策略只会产出更少的条目，绝不向上抛错，解析失败就是空列表。
type Strategy func(raw string, limit int) []news.Item

// Attempt 把一个端点和它对应的有序解析策略绑在一起。
type Attempt struct {
	Request    Request
	Strategies []Strategy
}

// Source 是一个数据源：栏目名、落地页，加上按序尝试的抓取+解析链。
// Fallback 仅用于测试注入带标记的样例数据，生产配置保持为空，
// 解析全部失败时栏目就是空列表，不造假数据。
type Source struct {
	Name        string
	Home        string
	Count       int // 每栏目条数，0 表示用聚合器的默认值
	PrependHome bool
	Attempts    []Attempt
	Fallback    []news.Item
}

// Collect 依次尝试各端点与策略，第一批非空结果即返回。
// 任何一步失败只会推进到下一步，调用方永远拿到一个（可能为空的）列表。
func (s *Source) Collect(client Getter, limit int) []news.Item {
	if s.Count > 0 {
		limit = s.Count
	}

	for _, at := range s.Attempts {
		raw, err := s.fetch(client, at.Request)
		if err != nil {
			log.Printf("%s: fetch %s: %v", s.Name, at.Request.URL, err)
			continue
		}
		for _, strat := range at.Strategies {
			if items := strat(raw, limit); len(items) > 0 {
				return items
			}
		}
	}

	if len(s.Fallback) > 0 {
		now := news.Clock(time.Now())
		items := make([]news.Item, 0, len(s.Fallback))
		for _, it := range s.Fallback {
			it.Time = now
			items = append(items, it)
		}
		if len(items) > limit {
			items = items[:limit]
		}
		return items
	}

	log.Printf("%s: all strategies got 0 items", s.Name)
	return []news.Item{}
}

func (s *Source) fetch(client Getter, req Request) (string, error) {
	if req.Method == http.MethodPost {
		return client.PostRaw(req.URL, req.Body, req.ContentType, req.Profile)
	}
	return client.Get(req.URL, req.Profile)
}

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// stripTags 去掉文本里残留的标记片段。
func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// collapseSpaces 把连续空白压成单个空格。
func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// decodeEntities 只解码源页面里常见的最小实体集。
func decodeEntities(s string) string {
	r := strings.NewReplacer(
		"&nbsp;", " ",
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
	return r.Replace(s)
}

// truncateRunes 按 rune 截断并补省略号，避免把多字节字符切坏。
// 省略号计入总长：结果不会超过 limit 个 rune。
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if limit <= 0 || len(rs) <= limit {
		return s
	}
	return string(rs[:limit-1]) + "…"
}

// cleanTitle 做统一的标题清洗：去标签、解实体、压空白，
// 再按源配置过滤过短标题（通常是导航元素误匹配）、截断过长标题。
func cleanTitle(s string, minLen, maxLen int) (string, bool) {
	s = collapseSpaces(decodeEntities(stripTags(s)))
	if s == "" || len([]rune(s)) < minLen {
		return "", false
	}
	if maxLen > 0 {
		s = truncateRunes(s, maxLen)
	}
	return s, true
}

// absoluteURL 把相对路径解析到源站点的 origin 上。
func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return base
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(base, "/") + href
	default:
		return strings.TrimRight(base, "/") + "/" + href
	}
}
