package extractor

import "github.com/LJTian/NewsNow/internal/fetcher"

// DefaultUserAgent 是未配置 UA 时的兜底画像，与各源线上抓取验证过的版本一致。
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// htmlProfile 返回抓网页用的请求头画像。
func htmlProfile(ua string) fetcher.HeaderProfile {
	if ua == "" {
		ua = DefaultUserAgent
	}
	return fetcher.HeaderProfile{
		UserAgent:      ua,
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		AcceptLanguage: "zh-CN,zh;q=0.9,en;q=0.8",
	}
}

// jsonProfile 返回调 JSON 接口用的请求头画像。
func jsonProfile(ua, referer string) fetcher.HeaderProfile {
	if ua == "" {
		ua = DefaultUserAgent
	}
	return fetcher.HeaderProfile{
		UserAgent:      ua,
		Accept:         "application/json, text/plain, */*",
		AcceptLanguage: "zh-CN,zh;q=0.9,en;q=0.8",
		Referer:        referer,
	}
}

// Registry 按固定栏目顺序返回全部数据源。
// 顺序即消费端看到的栏目顺序，与抓取完成先后无关。
// 闲鱼不在这里：它吃的是外部投喂的结构化数据，见 xianyu.go。
func Registry(ua string) []*Source {
	return []*Source{
		NewV2EX(ua),
		NewWeibo(ua),
		NewITHome(ua),
		NewZhihu(ua),
		NewGitHubTrending(ua),
		NewXiaohongshu(ua),
		NewGitCode(ua),
	}
}
