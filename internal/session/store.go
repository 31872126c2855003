package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"attendsheet/internal/model"
)

// Entry 一个浏览器会话最近一次上传的结果
type Entry struct {
	UploadID  string
	FileName  string
	Result    *model.Result
	Workbook  []byte // 处理后的工作簿；无数据时为空
	CreatedAt time.Time
	expiresAt time.Time
}

// Store 按会话 ID 保存处理结果，过期自动清理
// 每次上传整体替换该会话的条目
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]Entry
}

// NewStore 创建会话存储
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]Entry),
	}
}

// NewID 生成会话 ID
func NewID() string {
	return uuid.NewString()
}

// Put 保存（替换）会话条目
func (s *Store) Put(id string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.expiresAt = now.Add(s.ttl)
	s.items[id] = e
}

// Get 读取会话条目，读取即续期
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	e, ok := s.items[id]
	if !ok {
		return Entry{}, false
	}
	e.expiresAt = now.Add(s.ttl)
	s.items[id] = e
	return e, true
}

// Delete 删除会话条目
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Len 当前条目数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
