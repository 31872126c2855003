package parser

var chineseNumerals = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
}

// ChineseToInt 单个中文数字（一 至 十）转整数；其余输入（含空串）返回 0
func ChineseToInt(s string) int {
	return chineseNumerals[s]
}
