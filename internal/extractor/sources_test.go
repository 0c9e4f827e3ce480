package extractor

import (
	"strings"
	"testing"
)

func TestZhihuAPIExtract(t *testing.T) {
	raw := `{"data":[
		{"target":{"id":613350000,"title":"如何看待最新的大模型进展？"}},
		{"target":{"id":618954321,"title":"现在买房还是租房更划算？"}},
		{"target":{"id":0,"title":"缺 id 的脏数据"}},
		{"target":{"id":542673839,"title":"年轻人内卷的原因是什么？"}}
	]}`
	items := extractZhihuAPI(raw, 4)
	if len(items) != 3 {
		t.Fatalf("expected 3 items (one missing id), got %d", len(items))
	}
	if items[0].Url != "https://www.zhihu.com/question/613350000" {
		t.Fatalf("question url = %q", items[0].Url)
	}
}

func TestZhihuHTMLFallback(t *testing.T) {
	html := `<div><h2 class="HotItem-title">热榜问题标题一</h2>` +
		`<a class="HotItem-content" href="/question/100"></a>` +
		`<h2 class="HotItem-title">热榜问题标题二</h2>` +
		`<a class="HotItem-content" href="https://www.zhihu.com/question/200"></a></div>`
	items := extractZhihuHTML(html, 4)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Url != "https://www.zhihu.com/question/100" {
		t.Fatalf("relative url = %q", items[0].Url)
	}
}

func TestGitCodeExtract(t *testing.T) {
	raw := `{"content":[
		{"industry_news":{"title":"某大厂开源新框架","publish_time":"2024-03-01T08:30:00+08:00"},
		 "project_info":{"name":"frame","description":"a framework","web_url":"https://gitcode.com/org/frame"}},
		{"project_info":{"name":"tool","description":"很长的项目描述文字","web_url":"https://gitcode.com/org/tool"}},
		{"industry_news":{"title":"没有链接的动态"}}
	]}`
	items := extractGitCode(raw, 10)
	if len(items) != 2 {
		t.Fatalf("expected 2 items (one missing url), got %d", len(items))
	}
	if items[0].Title != "某大厂开源新框架" {
		t.Fatalf("title = %q", items[0].Title)
	}
	if items[0].Time != "08:30" {
		t.Fatalf("publish_time should map to HH:mm, got %q", items[0].Time)
	}
	if !strings.HasPrefix(items[1].Title, "tool: ") {
		t.Fatalf("project fallback title = %q", items[1].Title)
	}
}

func TestXiaohongshuHTMLExtract(t *testing.T) {
	html := `<section class="note-item"><div>` +
		`<a href="/explore/abc123?source=web">` +
		`<span data-v-51ec0135>今天的穿搭分享</span></a></div></section>` +
		`<section class="note-item"><div>` +
		`<a href="/explore/def456">` +
		`<span data-v-51ec0135>周末去哪玩</span></a></div></section>`
	items := extractXiaohongshuHTML(html, 10)
	if len(items) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(items))
	}
	if items[0].Url != "https://www.xiaohongshu.com/explore/abc123" {
		t.Fatalf("query string should be stripped from note url: %q", items[0].Url)
	}
}

func TestXiaohongshuFeedFallback(t *testing.T) {
	raw := `{"data":{"items":[
		{"id":"n1","note_card":{"display_title":"笔记标题一"}},
		{"id":"","note_card":{"display_title":"缺 id 的笔记"}},
		{"id":"n3","note_card":{"display_title":"笔记标题三"}}
	]}}`
	items := extractXiaohongshuFeed(raw, 10)
	if len(items) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(items))
	}
	if items[1].Url != "https://www.xiaohongshu.com/explore/n3" {
		t.Fatalf("note url = %q", items[1].Url)
	}
}

func TestITHomeExtract(t *testing.T) {
	html := `<a href="https://www.ithome.com/0/753/001.htm" class="t">某厂发布年度旗舰新品</a>` +
		`<a href="https://www.ithome.com/0/753/002.htm">短</a>` +
		`<a href="https://www.ithome.com/0/753/001.htm">某厂发布年度旗舰新品（重复）</a>`
	items := ithomeRegexStrategy(ithomeZeroRe)(html, 4)
	if len(items) != 1 {
		t.Fatalf("expected 1 item (short + duplicate filtered), got %d", len(items))
	}
	if items[0].Title != "某厂发布年度旗舰新品" {
		t.Fatalf("title = %q", items[0].Title)
	}
}

func TestSourcesGarbageInputNeverPanics(t *testing.T) {
	strategies := []Strategy{
		extractZhihuAPI, extractZhihuHTML,
		extractGitCode,
		extractXiaohongshuHTML, extractXiaohongshuFeed,
		extractWeiboAPI, extractWeiboHTML,
		extractV2EXAPI,
		extractGitHubRegex,
		ithomeRegexStrategy(ithomeLegacyRe),
	}
	for _, raw := range []string{"", "null", "<html>", "\x00\x01\x02"} {
		for i, s := range strategies {
			if got := s(raw, 5); len(got) != 0 {
				t.Fatalf("strategy %d on %q should yield empty, got %d", i, raw, len(got))
			}
		}
	}
}
