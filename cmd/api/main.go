package main

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/LJTian/NewsNow/internal/api"
	"github.com/LJTian/NewsNow/internal/archive"
	"github.com/LJTian/NewsNow/internal/cache"
	"github.com/LJTian/NewsNow/internal/config"
	"github.com/LJTian/NewsNow/internal/extractor"
	"github.com/LJTian/NewsNow/internal/fetcher"
	"github.com/LJTian/NewsNow/internal/scheduler"
	"github.com/LJTian/NewsNow/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// 缓存后端：默认单文件，配置了 Redis 就用 Redis
	var store cache.Store
	if cfg.RedisAddr != "" {
		store = cache.NewRedisStore(cfg.RedisAddr)
		log.Printf("cache store: redis %s", cfg.RedisAddr)
	} else {
		store = cache.NewFileStore(cfg.CacheFile)
		log.Printf("cache store: file %s", cfg.CacheFile)
	}

	sources := extractor.Registry(cfg.UserAgent)

	// 归档是旁路：没配 DSN 直接关掉，不影响聚合主流程
	var arch *archive.Store
	if cfg.PostgresDSN != "" {
		var err error
		arch, err = archive.NewStore(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("init archive failed: %v", err)
		}
		for _, src := range sources {
			if _, err := arch.EnsureSection(src.Name, src.Home); err != nil {
				log.Fatalf("ensure section %s failed: %v", src.Name, err)
			}
		}
	}

	client := fetcher.NewClient(fetcher.DefaultTimeout)
	svc := service.New(client, sources, cfg.PerSource, store, cfg.CacheTTL, arch)

	s, err := scheduler.New(cfg.CronSpec, svc)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(svc, arch)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
