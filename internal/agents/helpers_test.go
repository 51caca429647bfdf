package agents

import (
	"context"
	"sort"
	"sync"

	"github.com/shubh-37/social-content-engine/internal/models"
)

// sequencePicker replays fixed indexes, wrapping around when exhausted.
type sequencePicker struct {
	values []int
	next   int
}

func (p *sequencePicker) Pick(n int) int {
	v := p.values[p.next%len(p.values)] % n
	p.next++
	return v
}

type stubHashtags struct {
	tags  []string
	calls []int
}

func (s *stubHashtags) ExtractHashtags(text, platform string, count int) []string {
	s.calls = append(s.calls, count)
	if count < len(s.tags) {
		return s.tags[:count]
	}
	return s.tags
}

type memoryPostStore struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newMemoryPostStore(posts ...*models.Post) *memoryPostStore {
	store := &memoryPostStore{posts: make(map[string]*models.Post)}
	for _, post := range posts {
		store.posts[post.ID] = post
	}
	return store
}

func (m *memoryPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, context.Canceled
	}
	copied := *post
	return &copied, nil
}

func (m *memoryPostStore) GetByStatus(ctx context.Context, status string) ([]*models.Post, error) {
	return m.filter(func(p *models.Post) bool { return p.Status == status }), nil
}

func (m *memoryPostStore) GetEngaged(ctx context.Context) ([]*models.Post, error) {
	return m.filter(func(p *models.Post) bool { return p.Engagement > 0 }), nil
}

func (m *memoryPostStore) Update(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *memoryPostStore) filter(keep func(*models.Post) bool) []*models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Post
	for _, post := range m.posts {
		if keep(post) {
			copied := *post
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
