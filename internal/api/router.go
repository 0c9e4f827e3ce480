package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/LJTian/NewsNow/internal/archive"
	"github.com/LJTian/NewsNow/internal/extractor"
	"github.com/LJTian/NewsNow/internal/news"
	"github.com/LJTian/NewsNow/internal/service"
	"github.com/gin-gonic/gin"
)

// 闲鱼投喂数据的大小上限，防止异常大的请求体
const maxConvertBody = 2 << 20

type Server struct {
	svc  *service.News
	arch *archive.Store // 可为 nil，未配置归档时 /archive 返回 503
}

func NewServer(svc *service.News, arch *archive.Store) *Server {
	return &Server{svc: svc, arch: arch}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.getNews)
		v1.GET("/archive", s.listArchive)
		v1.POST("/convert/xianyu", s.convertXianyu)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getNews 返回当前缓存的聚合载荷。冷启动时宁可给空对象也不报错。
func (s *Server) getNews(c *gin.Context) {
	payload := s.svc.GetNews()
	if payload == "" {
		payload = "{}"
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
}

// listArchive 按栏目与日期查询历史归档条目。
func (s *Server) listArchive(c *gin.Context) {
	if s.arch == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "archive_disabled",
			"message": "archive store not configured",
		})
		return
	}

	section := c.Query("section")
	date := c.Query("date")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	entries, err := s.arch.ListEntries(section, date, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    entries,
	})
}

// convertXianyu 接收外部预抓取的闲鱼商品数据，归一成标准栏目结构返回。
// 上游数据常带全角标点，转换逻辑里自带修复，这里不做校验。
func (s *Server) convertXianyu(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxConvertBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "read body failed",
		})
		return
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items := extractor.ExtractXianyu(string(body), limit)
	agg := news.NewAggregate()
	agg.Add(extractor.XianyuSection, items)

	data, err := news.Marshal(agg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
