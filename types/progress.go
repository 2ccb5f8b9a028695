package types

// ProgressCallback 种子导入进度回调：总进度百分比、步骤说明、当前品牌
type ProgressCallback func(percentage int, text string, detail string)

// ProgressContext 导入中的一段进度
//
// database.Seed 按已处理的品牌数报告 0-100 的步骤进度，这里映射到
// 总进度的 [startPct, startPct+rangePct]，越界值被截断。
type ProgressContext struct {
	callback ProgressCallback
	startPct int
	rangePct int
}

// NewProgressContext 创建进度上下文
func NewProgressContext(callback ProgressCallback, startPct, rangePct int) *ProgressContext {
	return &ProgressContext{
		callback: callback,
		startPct: startPct,
		rangePct: rangePct,
	}
}

// UpdateStepProgress 报告步骤进度，未设置回调时忽略
func (pc *ProgressContext) UpdateStepProgress(stepPct int, text string, detail string) {
	if pc == nil || pc.callback == nil {
		return
	}
	if stepPct < 0 {
		stepPct = 0
	} else if stepPct > 100 {
		stepPct = 100
	}
	pc.callback(pc.startPct+(stepPct*pc.rangePct/100), text, detail)
}
