package archive

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/LJTian/NewsNow/internal/news"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Section 登记一个栏目（数据源）的元信息。
type Section struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:128;uniqueIndex" json:"name"` // 例如: V2EX热门
	HomeURL string `gorm:"size:256" json:"homeUrl"`
	Status  string `gorm:"size:32;index" json:"status"` // active / disabled

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Entry 是归档的一条新闻：聚合周期只覆盖缓存，这张表留全量历史。
type Entry struct {
	ID      string `gorm:"primaryKey;size:40" json:"id"`
	Title   string `gorm:"size:512" json:"title"`
	URL     string `gorm:"size:1024;uniqueIndex" json:"url"`
	Section string `gorm:"size:128;index" json:"section"`
	// Clock 是抓取时刻的 HH:mm 展示时间，不是新闻的发布时间
	Clock     string            `gorm:"size:8" json:"clock"`
	SeenDate  string            `gorm:"size:10;index" json:"seenDate"` // YYYY-MM-DD
	ExtraData datatypes.JSONMap `gorm:"type:jsonb" json:"extraData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	DB *gorm.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Section{}, &Entry{}); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// EnsureSection 确保栏目登记存在。
func (s *Store) EnsureSection(name, homeURL string) (*Section, error) {
	sec := &Section{}
	if err := s.DB.Where("name = ?", name).First(sec).Error; err == nil {
		return sec, nil
	}

	sec = &Section{Name: name, HomeURL: homeURL, Status: "active"}
	if err := s.DB.Create(sec).Error; err != nil {
		return nil, err
	}
	return sec, nil
}

// 东八区，归档日期按这个时区落
var locEast8 *time.Location

func init() {
	locEast8, _ = time.LoadLocation("Asia/Shanghai")
	if locEast8 == nil {
		locEast8 = time.FixedZone("CST", 8*3600)
	}
}

// toValidUTF8 规范为合法 UTF-8，防止混编来源触发 PostgreSQL invalid byte sequence
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// SaveAggregate 归档一轮聚合的全部条目。
// 首页占位项跳过；URL 作幂等键，重复出现只更新标题与抓取时刻。
func (s *Store) SaveAggregate(agg *news.Aggregate) error {
	today := time.Now().In(locEast8).Format("2006-01-02")

	for _, name := range agg.Names() {
		for _, it := range agg.Items(name) {
			if it.Time == news.HomeMarker {
				continue
			}
			e := &Entry{
				ID:       hashURL(it.Url),
				Title:    toValidUTF8(it.Title),
				URL:      it.Url,
				Section:  name,
				Clock:    it.Time,
				SeenDate: today,
				ExtraData: datatypes.JSONMap{
					"section": name,
				},
			}
			if err := s.DB.Where("url = ?", it.Url).FirstOrCreate(e).Error; err != nil {
				return err
			}
			_ = s.DB.Model(e).Updates(map[string]any{
				"title":     e.Title,
				"clock":     it.Time,
				"seen_date": today,
			}).Error
		}
	}
	return nil
}

// ListEntries 按栏目与可选日期返回归档条目，新的在前。
func (s *Store) ListEntries(section string, date string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	var list []Entry
	db := s.DB.Model(&Entry{})
	if section != "" {
		db = db.Where("section = ?", section)
	}
	if date != "" {
		db = db.Where("seen_date = ?", date)
	}
	if err := db.Order("updated_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}
