package aggregator

import (
	"log"
	"sync"

	"github.com/LJTian/NewsNow/internal/extractor"
	"github.com/LJTian/NewsNow/internal/news"
)

// DefaultPerSource 是源未指定条数时的每栏目默认条数。
const DefaultPerSource = 8

// Run 对全部配置源执行一轮聚合。
// 各源并发抓取互不影响：单源失败只会让对应栏目为空，不会拖垮整轮。
// 结果先按源的下标缓冲，全部结束后再按配置顺序组装，
// 保证栏目顺序跨轮稳定，与各源的完成先后无关。
func Run(client extractor.Getter, sources []*extractor.Source, perSource int) *news.Aggregate {
	if perSource <= 0 {
		perSource = DefaultPerSource
	}

	buf := make([][]news.Item, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src *extractor.Source) {
			defer wg.Done()
			items := src.Collect(client, perSource)
			log.Printf("%s: collected %d items", src.Name, len(items))
			buf[i] = items
		}(i, src)
	}
	wg.Wait()

	agg := news.NewAggregate()
	for i, src := range sources {
		items := buf[i]
		if src.PrependHome && src.Home != "" {
			items = append([]news.Item{news.HomeItem(src.Name, src.Home)}, items...)
		}
		agg.Add(src.Name, items)
	}
	return agg
}
