package attendance

import (
	"strings"

	"go.uber.org/zap"

	"attendsheet/internal/config"
	"attendsheet/internal/model"
	"attendsheet/internal/parser"
)

// Classification 单个周列的分类结果
type Classification struct {
	Snapshot     model.Snapshot
	Counts       model.Counts // 按区（大区+小区）
	MainCounts   model.Counts // 按大区
	MainDistrict string       // 第一条有效行的大区
}

// Classifier 按周列将每行归入 出席/未出席，并累计年龄层统计
type Classifier struct {
	cfg        config.AttendanceConfig
	logger     *zap.Logger
	categories map[string]struct{}
	youthAbove map[string]struct{}
}

// NewClassifier 创建分类器
func NewClassifier(cfg config.AttendanceConfig, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Classifier{
		cfg:        cfg,
		logger:     logger,
		categories: make(map[string]struct{}, len(cfg.AgeCategories)),
		youthAbove: make(map[string]struct{}, len(cfg.YouthAboveLabels)),
	}
	for _, cat := range cfg.AgeCategories {
		c.categories[cat] = struct{}{}
	}
	for _, label := range cfg.YouthAboveLabels {
		c.youthAbove[label] = struct{}{}
	}
	return c
}

// Classify 遍历数据行，按 weekCol 的取值分类
// 只有数值 1 算出席；0、空白、文本一律算未出席
// 前置条件：一个工作簿只有一个大区，MainDistrict 取第一条有效行的大区，
// 其他大区的行仍按各自的键计入 Counts 和 MainCounts
func (c *Classifier) Classify(t *model.Table, weekCol int) *Classification {
	out := &Classification{
		Snapshot:   model.NewSnapshot(),
		Counts:     model.NewCounts(),
		MainCounts: model.NewCounts(),
	}

	for row := c.cfg.HeaderRows; row < t.RowCount(); row++ {
		main := parser.NormalizeLabel(t.Cell(row, c.cfg.MainDistrictColumn).String())
		sub := parser.NormalizeLabel(t.Cell(row, c.cfg.SubDistrictColumn).String())
		district := main + sub
		name := strings.TrimSpace(t.Cell(row, c.cfg.NameColumn).String())

		if name == "" || !strings.HasPrefix(district, main) {
			continue
		}
		if c.cfg.DistrictPrefix != "" && !strings.HasPrefix(district, c.cfg.DistrictPrefix) {
			continue
		}
		if out.MainDistrict == "" && main != "" {
			out.MainDistrict = main
		}

		if !t.Cell(row, weekCol).IsOne() {
			out.Snapshot.NotAttended[district] = append(out.Snapshot.NotAttended[district], name)
			continue
		}

		out.Snapshot.Attended[district] = append(out.Snapshot.Attended[district], name)
		age := c.effectiveAge(parser.NormalizeLabel(t.Cell(row, c.cfg.AgeColumn).String()), name, district)
		c.increment(out.Counts, district, age)
		c.increment(out.MainCounts, main, age)
	}

	for _, dc := range out.Counts.Districts {
		out.Counts.GrandTotal += dc.Total
	}
	for _, dc := range out.MainCounts.Districts {
		out.MainCounts.GrandTotal += dc.Total
	}
	return out
}

// effectiveAge 青职以上同义词与空白归入默认年龄层；未知年龄层同样归入默认并记录告警
func (c *Classifier) effectiveAge(age, name, district string) string {
	if age == "" {
		return c.cfg.DefaultAgeCategory
	}
	if _, ok := c.youthAbove[age]; ok {
		return c.cfg.DefaultAgeCategory
	}
	if _, ok := c.categories[age]; ok {
		return age
	}
	c.logger.Warn("unrecognized age category, using default",
		zap.String("age", age),
		zap.String("name", name),
		zap.String("district", district),
		zap.String("default", c.cfg.DefaultAgeCategory),
	)
	return c.cfg.DefaultAgeCategory
}

func (c *Classifier) increment(counts model.Counts, key, age string) {
	dc, ok := counts.Districts[key]
	if !ok {
		dc = &model.DistrictCount{Ages: make(map[string]int, len(c.cfg.AgeCategories))}
		for _, cat := range c.cfg.AgeCategories {
			dc.Ages[cat] = 0
		}
		counts.Districts[key] = dc
	}
	dc.Total++
	dc.Ages[age]++
}
