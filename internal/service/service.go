package service

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/LJTian/NewsNow/internal/aggregator"
	"github.com/LJTian/NewsNow/internal/archive"
	"github.com/LJTian/NewsNow/internal/cache"
	"github.com/LJTian/NewsNow/internal/extractor"
	"github.com/LJTian/NewsNow/internal/news"
)

// News 是核心对外的消费契约：拿最佳可用载荷，顺手安排后台刷新。
type News struct {
	client    extractor.Getter
	sources   []*extractor.Source
	perSource int
	store     cache.Store
	ttl       time.Duration
	archive   *archive.Store // 可为 nil，归档是旁路

	refreshing atomic.Bool
	done       chan struct{} // 每轮刷新结束后收到通知，测试用
}

func New(client extractor.Getter, sources []*extractor.Source, perSource int, store cache.Store, ttl time.Duration, arch *archive.Store) *News {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &News{
		client:    client,
		sources:   sources,
		perSource: perSource,
		store:     store,
		ttl:       ttl,
		archive:   arch,
		done:      make(chan struct{}, 1),
	}
}

// GetNews 同步返回当前缓存的载荷；缓存缺失或已过期时顺带触发一次后台刷新。
// 过期缓存照常返回——新鲜度只决定要不要刷新，不决定能不能用。
// 冷启动（无缓存）返回空串，等首轮刷新落盘。
func (n *News) GetNews() string {
	payload, savedAt, ok := n.store.Load()
	if !ok {
		n.RefreshAsync()
		return ""
	}
	if !cache.Fresh(savedAt, time.Now(), n.ttl) {
		log.Printf("cache is stale (saved %s), refreshing in background", savedAt.Format("2006-01-02 15:04:05"))
		n.RefreshAsync()
	}
	return string(payload)
}

// RefreshAsync 调度一次后台刷新。已有周期在跑时直接返回：
// 刷新期间到达的请求读现有缓存即可，不需要等也不需要加入在途周期。
func (n *News) RefreshAsync() {
	if !n.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer func() {
			n.refreshing.Store(false)
			select {
			case n.done <- struct{}{}:
			default:
			}
		}()
		n.refreshOnce()
	}()
}

// RefreshNow 同步执行一轮刷新，给一次性采集命令用。
func (n *News) RefreshNow() {
	if !n.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer n.refreshing.Store(false)
	n.refreshOnce()
}

// WaitRefresh 阻塞到下一轮后台刷新结束或超时，仅测试使用。
func (n *News) WaitRefresh(timeout time.Duration) bool {
	select {
	case <-n.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (n *News) refreshOnce() {
	log.Println("start aggregation cycle...")

	agg := aggregator.Run(n.client, n.sources, n.perSource)

	payload, err := news.Marshal(agg)
	if err != nil {
		// 结构固定的载荷不该序列化失败，真失败属于程序错误
		log.Printf("marshal aggregate failed: %v", err)
		return
	}
	if err := n.store.Save(payload); err != nil {
		log.Printf("save cache failed: %v", err)
	}

	if n.archive != nil {
		if err := n.archive.SaveAggregate(agg); err != nil {
			log.Printf("archive aggregate failed: %v", err)
		}
	}

	log.Printf("aggregation cycle done, %d sections", agg.Len())
}
