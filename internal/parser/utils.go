package parser

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var (
	yearMonthRe  = regexp.MustCompile(`(\d{4})\s*年\s*0?(\d{1,2})\s*月`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ExtractYearMonth 从字符串中提取年月信息
// 支持格式: "2025年3月" / "2025年03月" / "２０２５年３月"
func ExtractYearMonth(text string) (year, month int, found bool) {
	matches := yearMonthRe.FindStringSubmatch(NormalizeLabel(text))
	if len(matches) >= 3 {
		year, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		if month < 1 || month > 12 {
			return 0, 0, false
		}
		return year, month, true
	}
	return 0, 0, false
}

// NormalizeLabel 规范化表头/区名：全角转半角、去除首尾空白
func NormalizeLabel(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

// CompactLabel 在 NormalizeLabel 基础上去除内部空白与换行
func CompactLabel(s string) string {
	return whitespaceRe.ReplaceAllString(NormalizeLabel(s), "")
}

// IsMonthHeader 月份表头同时包含 "年" 与 "月"
func IsMonthHeader(text string) bool {
	return strings.Contains(text, "年") && strings.Contains(text, "月")
}

// WeekOrdinal 从周标签（如 "第三週"）提取序号；无法识别返回 0
func WeekOrdinal(weekLabel, marker string) int {
	s := strings.TrimSpace(weekLabel)
	s = strings.ReplaceAll(s, "第", "")
	if marker != "" {
		s = strings.ReplaceAll(s, marker, "")
	}
	return ChineseToInt(strings.TrimSpace(s))
}
