package parser

import (
	"sort"
	"strings"

	"attendsheet/internal/model"
)

// ParseDistrictKey 以分隔字（如 "區"）拆分区名
// "二大區一" -> ("二大區", 1)；没有分隔字时返回 (原文, 0)
func ParseDistrictKey(label, delimiter string) model.DistrictKey {
	if delimiter == "" {
		return model.DistrictKey{Main: label}
	}
	idx := strings.Index(label, delimiter)
	if idx < 0 {
		return model.DistrictKey{Main: label}
	}
	cut := idx + len(delimiter)
	return model.DistrictKey{
		Main: label[:cut],
		Sub:  ChineseToInt(strings.TrimSpace(label[cut:])),
	}
}

// SortDistricts 按区排序键排序；键相同时按原文保证结果稳定
func SortDistricts(districts []string, delimiter string) []string {
	out := make([]string, len(districts))
	copy(out, districts)
	sort.SliceStable(out, func(i, j int) bool {
		ki := ParseDistrictKey(out[i], delimiter)
		kj := ParseDistrictKey(out[j], delimiter)
		if ki != kj {
			return ki.Less(kj)
		}
		return out[i] < out[j]
	})
	return out
}

// GroupByMain 按大区分组，组与组内顺序均按区排序键
func GroupByMain(districts []string, delimiter string) (mains []string, groups map[string][]string) {
	groups = make(map[string][]string)
	for _, d := range SortDistricts(districts, delimiter) {
		main := ParseDistrictKey(d, delimiter).Main
		if _, ok := groups[main]; !ok {
			mains = append(mains, main)
		}
		groups[main] = append(groups[main], d)
	}
	return mains, groups
}
