package matrix

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// Generation 是一个特征矩阵代次：(词表, 机构矩阵, 课程矩阵) 三者
// 只能作为一个整体构建，杜绝两侧词表错位的可能。
//
// 不变量：
//   - 两个矩阵的宽度 == 词表长度
//   - 矩阵所有元素有限（缺失属性为显式 0，不存在 NaN/Inf）
//   - Generation 发布后不可变，读方可以无锁共享
type Generation struct {
	vocab *feature.Vocabulary

	centres      []*core.Centre // 按 ID 升序
	centreRows   map[string]int // 机构 ID -> 行号
	centreMatrix [][]float64

	courses      []*core.Course // 按 ID 升序
	courseMatrix [][]float64

	seq     uint64
	builtAt time.Time
}

// Build 对实体快照执行 抽取 -> 单次 Fit -> 投影，产出一个完整代次。
//
// 两侧的抽取并发执行；任何一个实体抽取失败都会使整次构建失败，
// 不会产出部分矩阵。
func Build(ctx context.Context, snap *core.EntitySnapshot, vectorizer *feature.Vectorizer) (*Generation, error) {
	if snap == nil {
		return nil, core.NewDomainError(core.ModuleMatrix, core.ErrorCodeInternalError,
			"matrix: nil entity snapshot")
	}

	centres := sortCentres(snap.Centres)
	courses := sortCourses(snap.Courses)

	extractor := feature.NewExtractor()
	centreMaps := make([]core.AttributeMap, len(centres))
	courseMaps := make([]core.AttributeMap, len(courses))

	// 抽取是纯 CPU 工作，两侧互不依赖，并发执行
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i, c := range centres {
			if err := gctx.Err(); err != nil {
				return err
			}
			attrs, err := extractor.ExtractCentre(c)
			if err != nil {
				return err
			}
			centreMaps[i] = attrs
		}
		return nil
	})
	g.Go(func() error {
		for i, c := range courses {
			if err := gctx.Err(); err != nil {
				return err
			}
			attrs, err := extractor.ExtractCourse(c)
			if err != nil {
				return err
			}
			courseMaps[i] = attrs
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 单次 Fit：两侧共用一个词表
	vocab, err := vectorizer.Fit(centreMaps, courseMaps)
	if err != nil {
		return nil, err
	}

	gen := &Generation{
		vocab:        vocab,
		centres:      centres,
		centreRows:   make(map[string]int, len(centres)),
		centreMatrix: make([][]float64, len(centres)),
		courses:      courses,
		courseMatrix: make([][]float64, len(courses)),
		builtAt:      time.Now(),
	}

	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		for i := range centres {
			if err := g2ctx.Err(); err != nil {
				return err
			}
			vec, err := vectorizer.TransformCentre(centreMaps[i])
			if err != nil {
				return err
			}
			gen.centreMatrix[i] = vec
		}
		return nil
	})
	g2.Go(func() error {
		for i := range courses {
			if err := g2ctx.Err(); err != nil {
				return err
			}
			vec, err := vectorizer.TransformCourse(courseMaps[i])
			if err != nil {
				return err
			}
			gen.courseMatrix[i] = vec
		}
		return nil
	})
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	for i, c := range centres {
		gen.centreRows[c.ID] = i
	}
	return gen, nil
}

// Vocabulary 返回本代次的维度词表。
func (g *Generation) Vocabulary() *feature.Vocabulary {
	return g.vocab
}

// Seq 返回代次序号（由 Cache 在发布时分配，从 1 开始）。
func (g *Generation) Seq() uint64 {
	return g.seq
}

// BuiltAt 返回本代次的构建时间。
func (g *Generation) BuiltAt() time.Time {
	return g.builtAt
}

// CentreCount 返回机构数。
func (g *Generation) CentreCount() int {
	return len(g.centres)
}

// CourseCount 返回课程数。
func (g *Generation) CourseCount() int {
	return len(g.courses)
}

// Centre 返回机构记录（本代次快照中的版本）。
func (g *Generation) Centre(id string) (*core.Centre, bool) {
	row, ok := g.centreRows[id]
	if !ok {
		return nil, false
	}
	return g.centres[row], true
}

// CentreVector 返回机构的特征向量。
func (g *Generation) CentreVector(id string) ([]float64, bool) {
	row, ok := g.centreRows[id]
	if !ok {
		return nil, false
	}
	return g.centreMatrix[row], true
}

// Courses 返回课程列表（按 ID 升序；调用方不得修改）。
func (g *Generation) Courses() []*core.Course {
	return g.courses
}

// CourseVector 返回第 row 行课程的需求向量。
func (g *Generation) CourseVector(row int) []float64 {
	return g.courseMatrix[row]
}

func sortCentres(in []*core.Centre) []*core.Centre {
	out := make([]*core.Centre, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortCourses(in []*core.Course) []*core.Course {
	out := make([]*core.Course, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
