package cache

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL 是缓存的默认新鲜期：超过 12 小时视为过期，触发后台刷新。
// 过期的缓存依旧照常返回给调用方（stale-while-revalidate）。
const DefaultTTL = 12 * time.Hour

// Store 保存最近一次成功聚合的序列化载荷。
// Load 的三个返回值：载荷、写入时间、是否存在；读失败一律当作不存在。
type Store interface {
	Load() ([]byte, time.Time, bool)
	Save(payload []byte) error
}

// Fresh 判断缓存是否还在新鲜期内。边界取严格小于：正好到期即为过期。
func Fresh(savedAt, now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return now.Sub(savedAt) < ttl
}

// FileStore 把载荷存成单个文件，文件的修改时间就是新鲜度时钟。
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load 读取缓存文件。文件缺失、读失败、内容为空都按"无缓存"处理，绝不报错。
func (f *FileStore) Load() ([]byte, time.Time, bool) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return nil, time.Time{}, false
	}
	data, err := os.ReadFile(f.Path)
	if err != nil || len(data) == 0 {
		return nil, time.Time{}, false
	}
	return data, info.ModTime(), true
}

// Save 整体替换缓存文件：先写临时文件再改名，读方不会看到半截内容。
func (f *FileStore) Save(payload []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".newsdata-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.Path)
}
