package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/matchkit/core"
)

// Redis key 布局：
//   - matchkit:centre:<id> / matchkit:course:<id> 存实体 JSON
//   - matchkit:centres / matchkit:courses 存实体 ID 集合（Snapshot 的索引）
const (
	centreKeyPrefix = "matchkit:centre:"
	courseKeyPrefix = "matchkit:course:"
	centreIDSetKey  = "matchkit:centres"
	courseIDSetKey  = "matchkit:courses"
)

// RedisEntityStore 是 Redis 实现的 EntityStore。
// 生产环境常用，支持持久化、集群、哨兵等。
//
// 一致性说明：Snapshot 用 SMEMBERS + 逐 ID GET 两步读取，不加全局锁；
// 入驻流程的写入频率远低于重建频率，个别并发写入落在快照前后均可接受，
// 重建以拿到的快照为一致视图，不追实时。
type RedisEntityStore struct {
	client *redis.Client
}

func NewRedisEntityStore(addr string, db int) (*RedisEntityStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisEntityStore{client: client}, nil
}

func (r *RedisEntityStore) Name() string { return "redis" }

func (r *RedisEntityStore) GetCentre(ctx context.Context, id string) (*core.Centre, error) {
	data, err := r.client.Get(ctx, centreKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}

	var centre core.Centre
	if err := json.Unmarshal(data, &centre); err != nil {
		return nil, err
	}
	return &centre, nil
}

func (r *RedisEntityStore) GetCourse(ctx context.Context, id string) (*core.Course, error) {
	data, err := r.client.Get(ctx, courseKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}

	var course core.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *RedisEntityStore) PutCentre(ctx context.Context, centre *core.Centre) error {
	if centre == nil || centre.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidQuery,
			"store: centre must carry an id")
	}

	data, err := json.Marshal(centre)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, centreKeyPrefix+centre.ID, data, 0)
	pipe.SAdd(ctx, centreIDSetKey, centre.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisEntityStore) PutCourse(ctx context.Context, course *core.Course) error {
	if course == nil || course.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidQuery,
			"store: course must carry an id")
	}

	data, err := json.Marshal(course)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, courseKeyPrefix+course.ID, data, 0)
	pipe.SAdd(ctx, courseIDSetKey, course.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisEntityStore) Snapshot(ctx context.Context) (*core.EntitySnapshot, error) {
	snap := &core.EntitySnapshot{}

	centreIDs, err := r.client.SMembers(ctx, centreIDSetKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(centreIDs)
	for _, id := range centreIDs {
		centre, err := r.GetCentre(ctx, id)
		if core.IsNotFound(err) {
			// ID 集合与实体 key 之间的孤儿项，跳过
			continue
		}
		if err != nil {
			return nil, err
		}
		snap.Centres = append(snap.Centres, centre)
	}

	courseIDs, err := r.client.SMembers(ctx, courseIDSetKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(courseIDs)
	for _, id := range courseIDs {
		course, err := r.GetCourse(ctx, id)
		if core.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		snap.Courses = append(snap.Courses, course)
	}

	return snap, nil
}

func (r *RedisEntityStore) Close() error {
	return r.client.Close()
}

// 确保 RedisEntityStore 实现了 core.EntityStore 接口
var _ core.EntityStore = (*RedisEntityStore)(nil)
