package attendance

// ProgressEvent 逐周处理进度
type ProgressEvent struct {
	Done    int    // 已处理周列数
	Total   int    // 周列总数
	Week    string // 当前周展示名
	Skipped bool   // 当前周无人出席
}

// Percent 完成百分比
func (e ProgressEvent) Percent() int {
	if e.Total <= 0 {
		return 100
	}
	return e.Done * 100 / e.Total
}

// ProgressFunc 进度回调
type ProgressFunc func(ProgressEvent)

func (fn ProgressFunc) report(done, total int, week string, skipped bool) {
	if fn == nil {
		return
	}
	fn(ProgressEvent{Done: done, Total: total, Week: week, Skipped: skipped})
}
