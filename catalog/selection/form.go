package selection

// Form 按顺序持有各级选择器
//
// Evaluate 对每一对父子级各检查一次，顺序即注册顺序。每一级只看它的直接父级：
// 祖父级变化不会直接校验孙级，中间级被清除后孙级看到的是“父级为空”，不会动作。
type Form struct {
	levels []Validator
}

// NewForm 创建表单
func NewForm(levels ...Validator) *Form {
	return &Form{levels: levels}
}

// Evaluate 执行一轮有效性检查，返回被清除的字段
func (f *Form) Evaluate() []string {
	cleared := make([]string, 0)
	for _, level := range f.levels {
		if level.Validate() {
			cleared = append(cleared, level.Field())
		}
	}
	return cleared
}
