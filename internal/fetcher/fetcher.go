package fetcher

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// DefaultTimeout 单次请求的默认超时。各源站点普遍慢，给足 15 秒。
const DefaultTimeout = 15 * time.Second

// HeaderProfile 描述一个源要求的请求头画像。
// UA、Referer 这些是运维层面的配置，不在采集器里写死，方便轮换。
type HeaderProfile struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
	Referer        string
	Extra          map[string]string
}

// FetchError 覆盖一次请求的所有传输层失败：DNS、连接、超时、非 2xx。
// 这一层不做重试，换备用端点重试是上层解析链的事。
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client 对一个源端点执行单次受限时间的 HTTP 请求。
// 每次请求新建一个 collector，与源之间互不共享状态。
type Client struct {
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{timeout: timeout}
}

func (c *Client) newCollector(p HeaderProfile, contentType string) (*colly.Collector, *[]byte) {
	col := colly.NewCollector()
	if p.UserAgent != "" {
		col.UserAgent = p.UserAgent
	}
	col.SetRequestTimeout(c.timeout)

	var body []byte
	col.OnRequest(func(r *colly.Request) {
		if p.Accept != "" {
			r.Headers.Set("Accept", p.Accept)
		}
		if p.AcceptLanguage != "" {
			r.Headers.Set("Accept-Language", p.AcceptLanguage)
		}
		if p.Referer != "" {
			r.Headers.Set("Referer", p.Referer)
		}
		for k, v := range p.Extra {
			r.Headers.Set(k, v)
		}
		if contentType != "" {
			r.Headers.Set("Content-Type", contentType)
		}
	})
	col.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	return col, &body
}

// Get 执行一次 GET，返回解压后的响应文本。
func (c *Client) Get(rawURL string, p HeaderProfile) (string, error) {
	col, body := c.newCollector(p, "")
	if err := col.Visit(rawURL); err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	return string(*body), nil
}

// PostRaw 以原始字节体执行一次 POST（小红书 feed 这类 JSON 接口用）。
func (c *Client) PostRaw(rawURL string, reqBody []byte, contentType string, p HeaderProfile) (string, error) {
	col, body := c.newCollector(p, contentType)
	if err := col.PostRaw(rawURL, reqBody); err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	return string(*body), nil
}
