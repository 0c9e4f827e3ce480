package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// HomeMarker 是栏目首条"回到首页"条目的 Time 占位文案。
// 前端靠这个字面量识别首页项，不能改。
const HomeMarker = "首页"

// Item 是聚合后的最小新闻单元。
// 字段名与序列化后的 JSON 键完全一致（Title/Time/Url），
// 下游（Quicker 窗口、n8n 等）严格按键名取值。
type Item struct {
	Title string `json:"Title"`
	Time  string `json:"Time"`
	Url   string `json:"Url"`
}

// HomeItem 构造一个栏目首页项：Title 放栏目名，Time 用 HomeMarker 占位，
// Url 指向栏目落地页。
func HomeItem(name, home string) Item {
	return Item{Title: name, Time: HomeMarker, Url: home}
}

// Clock 返回 HH:mm 格式的当前展示时间。
// 注意这是"抓取时刻"而不是新闻的发布时间，下游不应当作权威时间使用。
func Clock(now time.Time) string {
	return now.Format("15:04")
}

// Aggregate 是一轮聚合产出的完整载荷：栏目名到条目列表的有序映射。
// 栏目顺序由插入顺序决定（即配置顺序），序列化后保持不变。
type Aggregate struct {
	names    []string
	sections map[string][]Item
}

func NewAggregate() *Aggregate {
	return &Aggregate{sections: make(map[string][]Item)}
}

// Add 追加一个栏目。重名栏目覆盖条目但保留原有位置，保证栏目名唯一。
func (a *Aggregate) Add(name string, items []Item) {
	if items == nil {
		items = []Item{}
	}
	if _, ok := a.sections[name]; !ok {
		a.names = append(a.names, name)
	}
	a.sections[name] = items
}

// Names 返回插入顺序的栏目名列表。
func (a *Aggregate) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Items 返回某栏目的条目，不存在返回 nil。
func (a *Aggregate) Items(name string) []Item {
	return a.sections[name]
}

func (a *Aggregate) Len() int {
	return len(a.names)
}

// MarshalJSON 按插入顺序输出一个 JSON 对象。
// 标准库的 map 序列化会按键名排序，这里手工拼接以保持栏目顺序稳定。
func (a *Aggregate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range a.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(a.sections[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 用 token 流逐键解析，恢复栏目的原始顺序。
func (a *Aggregate) UnmarshalJSON(data []byte) error {
	a.names = nil
	a.sections = make(map[string][]Item)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("aggregate: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("aggregate: expected string key, got %v", keyTok)
		}
		var items []Item
		if err := dec.Decode(&items); err != nil {
			return err
		}
		a.Add(name, items)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Marshal 输出对人类可读的缩进版载荷，作为缓存文件与接口的线格式。
func Marshal(a *Aggregate) ([]byte, error) {
	compact, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal 从缓存读回载荷。
func Unmarshal(data []byte) (*Aggregate, error) {
	a := NewAggregate()
	if err := json.Unmarshal(data, a); err != nil {
		return nil, err
	}
	return a, nil
}
