package scheduler

import (
	"log"
	"time"

	"github.com/LJTian/NewsNow/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler 按 cron 表达式周期性触发聚合刷新。
// 刷新本身在 service 层有在途去重，cron 触发与请求触发互不打架。
type Scheduler struct {
	cron *cron.Cron
	svc  *service.News
}

func New(spec string, svc *service.News) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, svc: svc}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟首轮刷新，避免与用户首次打开页面的请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, s.runOnce)
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	log.Println("scheduled refresh...")
	s.svc.RefreshAsync()
}
