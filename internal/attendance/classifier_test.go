package attendance

import (
	"testing"

	"attendsheet/internal/model"
)

func TestClassify_Partition(t *testing.T) {
	t.Parallel()

	rows := [][]model.Cell{
		row(nil, nil, nil, nil, "2025年3月"),
		row(nil, nil, nil, nil, "第一週"),
		row("二大區", "一", "甲", "大專", 1),
		row("二大區", "一", "乙", "中學", 0),
		row("二大區", "二", "丙", "", nil),
		row("二大區", "二", "丁", "小學", 1),
		row("二大區", "三", "戊", "大學", "1"),
		row("二大區", "三", "", "大學", 1),
		row(nil, nil, nil, nil, nil),
	}
	c := NewClassifier(testConfig(), nil)
	got := c.Classify(model.NewTable("input", rows), 4)

	wantAttended := map[string][]string{
		"二大區一": {"甲"},
		"二大區二": {"丁"},
	}
	wantAbsent := map[string][]string{
		"二大區一": {"乙"},
		"二大區二": {"丙"},
		"二大區三": {"戊"}, // 文本 "1" 不算出席
	}
	assertNames(t, "attended", got.Snapshot.Attended, wantAttended)
	assertNames(t, "not attended", got.Snapshot.NotAttended, wantAbsent)

	for district, names := range got.Snapshot.Attended {
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			seen[n] = true
		}
		for _, n := range got.Snapshot.NotAttended[district] {
			if seen[n] {
				t.Fatalf("%s appears in both lists of %s", n, district)
			}
		}
	}
}

func TestClassify_CountConsistency(t *testing.T) {
	t.Parallel()

	rows := [][]model.Cell{
		row(nil, nil, nil, nil, "2025年3月"),
		row(nil, nil, nil, nil, "第一週"),
		row("二大區", "一", "甲", "大專", 1),
		row("二大區", "一", "乙", "中學", 1),
		row("二大區", "二", "丙", "小學", 1),
		row("二大區", "二", "丁", "青職", 1),
		row("二大區", "三", "戊", "學齡前", 0),
	}
	c := NewClassifier(testConfig(), nil)
	got := c.Classify(model.NewTable("input", rows), 4)

	sum := 0
	for district, dc := range got.Counts.Districts {
		ages := 0
		for _, n := range dc.Ages {
			ages += n
		}
		if ages != dc.Total {
			t.Fatalf("%s: ages sum %d != total %d", district, ages, dc.Total)
		}
		if len(dc.Ages) != len(testConfig().AgeCategories) {
			t.Fatalf("%s: expected every category initialized, got %v", district, dc.Ages)
		}
		sum += dc.Total
	}
	if sum != got.Counts.GrandTotal || sum != 4 {
		t.Fatalf("grand total=%d sum=%d", got.Counts.GrandTotal, sum)
	}

	main := got.MainCounts.Get("二大區")
	if main == nil || main.Total != sum || got.MainCounts.GrandTotal != sum {
		t.Fatalf("main counts mismatch: %+v", got.MainCounts)
	}
	if got.Counts.Get("二大區三") != nil {
		t.Fatalf("district without attendees must not be counted")
	}
}

func TestClassify_AgeCoercion(t *testing.T) {
	t.Parallel()

	rows := [][]model.Cell{
		row(nil, nil, nil, nil, "2025年3月"),
		row(nil, nil, nil, nil, "第一週"),
		row("二大區", "一", "甲", "年長", 1),
		row("二大區", "一", "乙", "未知層", 1),
		row("二大區", "一", "丙", nil, 1),
	}
	c := NewClassifier(testConfig(), nil)
	got := c.Classify(model.NewTable("input", rows), 4)

	dc := got.Counts.Get("二大區一")
	if dc == nil {
		t.Fatalf("missing district counts")
	}
	if dc.Ages["青職以上"] != 3 {
		t.Fatalf("expected all three in default bucket, got %v", dc.Ages)
	}
	if _, ok := dc.Ages["年長"]; ok {
		t.Fatalf("synonym must not create its own bucket")
	}
	if _, ok := dc.Ages["未知層"]; ok {
		t.Fatalf("unknown label must not create its own bucket")
	}
}

func TestClassify_MainDistrictFromFirstRow(t *testing.T) {
	t.Parallel()

	rows := [][]model.Cell{
		row(nil, nil, nil, nil, "2025年3月"),
		row(nil, nil, nil, nil, "第一週"),
		row("", "一", "", "大專", 1),
		row("二大區", "一", "甲", "大專", 0),
		row("三大區", "一", "乙", "大專", 1),
	}
	c := NewClassifier(testConfig(), nil)
	got := c.Classify(model.NewTable("input", rows), 4)

	if got.MainDistrict != "二大區" {
		t.Fatalf("main district=%q", got.MainDistrict)
	}
	// 其他大区的行仍按各自的键计数
	if dc := got.MainCounts.Get("三大區"); dc == nil || dc.Total != 1 {
		t.Fatalf("other main district not counted: %+v", got.MainCounts.Districts)
	}
	if got.MainCounts.Get("二大區") != nil {
		t.Fatalf("main district without attendees must not be counted")
	}
}

func TestClassify_DistrictPrefixFilter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DistrictPrefix = "二大區"
	rows := [][]model.Cell{
		row(nil, nil, nil, nil, "2025年3月"),
		row(nil, nil, nil, nil, "第一週"),
		row("二大區", "一", "甲", "大專", 1),
		row("三大區", "一", "乙", "大專", 1),
	}
	got := NewClassifier(cfg, nil).Classify(model.NewTable("input", rows), 4)

	if got.Counts.GrandTotal != 1 {
		t.Fatalf("grand total=%d", got.Counts.GrandTotal)
	}
	if _, ok := got.Snapshot.Attended["三大區一"]; ok {
		t.Fatalf("filtered district should be skipped")
	}
}

func assertNames(t *testing.T, what string, got, want map[string][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v want %v", what, got, want)
	}
	for district, names := range want {
		g := got[district]
		if len(g) != len(names) {
			t.Fatalf("%s %s: got %v want %v", what, district, g, names)
		}
		for i := range names {
			if g[i] != names[i] {
				t.Fatalf("%s %s: got %v want %v", what, district, g, names)
			}
		}
	}
}
