package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/matchkit/core"
)

// MemoryEntityStore 是内存实现的 EntityStore，用于测试/开发/原型。
// 进程重启后数据丢失。
//
// 读写均做记录级拷贝：写入方与读取方各自持有副本，外部协作方
// 后续修改自己手里的对象不会污染存储内的记录。
type MemoryEntityStore struct {
	mu      sync.RWMutex
	centres map[string]*core.Centre
	courses map[string]*core.Course
}

func NewMemoryEntityStore() *MemoryEntityStore {
	return &MemoryEntityStore{
		centres: make(map[string]*core.Centre),
		courses: make(map[string]*core.Course),
	}
}

func (m *MemoryEntityStore) Name() string { return "memory" }

func (m *MemoryEntityStore) GetCentre(ctx context.Context, id string) (*core.Centre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.centres[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return copyCentre(c), nil
}

func (m *MemoryEntityStore) GetCourse(ctx context.Context, id string) (*core.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.courses[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return copyCourse(c), nil
}

func (m *MemoryEntityStore) PutCentre(ctx context.Context, centre *core.Centre) error {
	if centre == nil || centre.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidQuery,
			"store: centre must carry an id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.centres[centre.ID] = copyCentre(centre)
	return nil
}

func (m *MemoryEntityStore) PutCourse(ctx context.Context, course *core.Course) error {
	if course == nil || course.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidQuery,
			"store: course must carry an id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[course.ID] = copyCourse(course)
	return nil
}

// Snapshot 返回全部实体的一致快照，按 ID 升序排列。
// 快照在持锁期间整体拷贝，之后存储侧的写入不会影响返回值。
func (m *MemoryEntityStore) Snapshot(ctx context.Context) (*core.EntitySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := &core.EntitySnapshot{
		Centres: make([]*core.Centre, 0, len(m.centres)),
		Courses: make([]*core.Course, 0, len(m.courses)),
	}
	for _, c := range m.centres {
		snap.Centres = append(snap.Centres, copyCentre(c))
	}
	for _, c := range m.courses {
		snap.Courses = append(snap.Courses, copyCourse(c))
	}

	sort.Slice(snap.Centres, func(i, j int) bool { return snap.Centres[i].ID < snap.Centres[j].ID })
	sort.Slice(snap.Courses, func(i, j int) bool { return snap.Courses[i].ID < snap.Courses[j].ID })
	return snap, nil
}

func (m *MemoryEntityStore) Close() error {
	return nil
}

func copyCentre(c *core.Centre) *core.Centre {
	out := *c
	out.Labs = copyFloatMap(c.Labs)
	out.Skills = copyFloatMap(c.Skills)
	if c.Modes != nil {
		out.Modes = make(map[core.DeliveryMode]bool, len(c.Modes))
		for k, v := range c.Modes {
			out.Modes[k] = v
		}
	}
	return &out
}

func copyCourse(c *core.Course) *core.Course {
	out := *c
	out.RequiredLabs = append([]string(nil), c.RequiredLabs...)
	out.RequiredSkills = append([]string(nil), c.RequiredSkills...)
	out.Tags = append([]string(nil), c.Tags...)
	return &out
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// 确保 MemoryEntityStore 实现了 core.EntityStore 接口
var _ core.EntityStore = (*MemoryEntityStore)(nil)
