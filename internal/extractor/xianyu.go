package extractor

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
)

// XianyuSection 是闲鱼栏目的固定名，外部投喂数据转换后挂在这个键下。
const XianyuSection = "闲鱼二手"

const (
	xianyuBase     = "https://www.goofish.com"
	xianyuMaxTitle = 100
)

// 上游经常把 JSON 写成中文标点（"key"： / ，分隔），
// 解析前先做一轮文本修复。
var (
	xianyuKeyColonRe = regexp.MustCompile(`"([^"]+)"：`)
	xianyuSpaceClose = regexp.MustCompile(`\s+([\]}])`)
)

// RepairJSON 把全角标点和不规则空白修复成合法 JSON 语法。
// 尽力而为：修不动的留给后面的解析报错。
func RepairJSON(s string) string {
	s = xianyuKeyColonRe.ReplaceAllString(s, `"$1":`)
	s = strings.NewReplacer(
		"：", ":",
		"，", ",",
		"、", ",",
	).Replace(s)
	s = xianyuSpaceClose.ReplaceAllString(s, "$1")
	return s
}

type xianyuItem struct {
	Title     string          `json:"title"`
	DetailURL string          `json:"detail_url"`
	ItemID    json.RawMessage `json:"item_id"`
}

// ExtractXianyu 把外部预抓取的闲鱼商品 JSON 归一成新闻条目。
// 输入可能是数组，也可能是 {"data":[...]}，还有可能带全角标点；
// 先按原文解析，失败再修复重试。两轮都失败只产出一条带错误说明的占位项，
// 这是整条流水线里唯一保留占位输出的地方（上游是人喂的数据，静默吞掉会查不到问题）。
func ExtractXianyu(raw string, limit int) []news.Item {
	if limit <= 0 {
		limit = 100
	}

	list, err := parseXianyu(raw)
	if err != nil {
		list, err = parseXianyu(RepairJSON(raw))
	}
	if err != nil {
		return []news.Item{{
			Title: "数据转换失败: " + err.Error(),
			Time:  news.Clock(time.Now()),
			Url:   xianyuBase,
		}}
	}

	now := news.Clock(time.Now())
	var items []news.Item
	for _, it := range list {
		if len(items) >= limit {
			break
		}
		title := collapseSpaces(decodeEntities(stripTags(it.Title)))
		if title == "" {
			title = "无标题"
		}
		title = truncateRunes(title, xianyuMaxTitle)

		itemURL := it.DetailURL
		if itemURL == "" {
			if id := rawString(it.ItemID); id != "" {
				itemURL = xianyuBase + "/item?id=" + id
			}
		}
		if itemURL == "" {
			continue
		}
		items = append(items, news.Item{Title: title, Time: now, Url: itemURL})
	}
	return items
}

func parseXianyu(raw string) ([]xianyuItem, error) {
	raw = strings.TrimSpace(raw)

	var list []xianyuItem
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Data []xianyuItem `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Data, nil
}

// rawString 把 item_id 字段转成字符串，兼容数字与带引号两种写法。
func rawString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	return strings.Trim(s, `"`)
}
