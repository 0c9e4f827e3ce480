package main

import (
	"fmt"
	"log"

	"github.com/LJTian/NewsNow/internal/archive"
	"github.com/LJTian/NewsNow/internal/cache"
	"github.com/LJTian/NewsNow/internal/config"
	"github.com/LJTian/NewsNow/internal/extractor"
	"github.com/LJTian/NewsNow/internal/fetcher"
	"github.com/LJTian/NewsNow/internal/service"
)

// 一个仅执行一轮聚合的命令行入口：走与服务相同的刷新路径
// （写缓存、配了 DSN 也归档），结果打到标准输出，适合手动触发
func main() {
	cfg := config.Load()

	var store cache.Store
	if cfg.RedisAddr != "" {
		store = cache.NewRedisStore(cfg.RedisAddr)
	} else {
		store = cache.NewFileStore(cfg.CacheFile)
	}

	var arch *archive.Store
	if cfg.PostgresDSN != "" {
		var err error
		arch, err = archive.NewStore(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("init archive failed: %v", err)
		}
	}

	client := fetcher.NewClient(fetcher.DefaultTimeout)
	sources := extractor.Registry(cfg.UserAgent)

	svc := service.New(client, sources, cfg.PerSource, store, cfg.CacheTTL, arch)
	svc.RefreshNow()

	payload, _, ok := store.Load()
	if !ok {
		log.Fatalf("refresh produced no payload")
	}
	fmt.Println(string(payload))
}
