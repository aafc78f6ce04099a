// Package workspace 章节工作台：一次表单提交被解码为有序的命令序列并逐条执行
package workspace

// Command 工作台命令（封闭集合，只有本包内的类型实现）
type Command interface {
	isCommand()
}

// SaveChapter 覆盖保存章节标题、摘要与正文
type SaveChapter struct {
	Title   string
	Summary string
	Text    string
}

// AddSceneBeat 新增场景节拍，Order 为 nil 时取默认值
type AddSceneBeat struct {
	Description string
	Order       *int
}

// EditSceneBeat 修改场景节拍，Order 为 nil 时保留原值
type EditSceneBeat struct {
	ID          uint
	Description string
	Order       *int
}

// DeleteSceneBeat 删除场景节拍
type DeleteSceneBeat struct {
	ID uint
}

type AddKeyEvent struct {
	Description string
	Order       *int
}

type EditKeyEvent struct {
	ID          uint
	Description string
	Order       *int
}

type DeleteKeyEvent struct {
	ID uint
}

// AddWorldElement 新增世界观条目，Category 为空时归入 Settings
type AddWorldElement struct {
	Category    string
	Description string
}

// EditWorldElement 修改世界观条目，Category 为空时保留原分类
type EditWorldElement struct {
	ID          uint
	Category    string
	Description string
}

type AddCharacter struct {
	Name      string
	Traits    string
	Backstory string
}

type EditCharacter struct {
	ID        uint
	Name      string
	Traits    string
	Backstory string
}

type DeleteCharacter struct {
	ID uint
}

// GenerateProse 按场景输入生成正文
type GenerateProse struct {
	Model  string
	Preset string
	Input  string
	// Selection 显式选择的角色；nil 表示按输入自动识别
	Selection []uint
}

// ExpandBeat 将单个节拍展开为事件序列
type ExpandBeat struct {
	Model     string
	Preset    string
	Input     string
	Selection []uint
}

// SummarizeChapter 将章节正文拆解为按时间顺序排列的关键事件
type SummarizeChapter struct {
	Model string
}

func (SaveChapter) isCommand() {}
func (AddSceneBeat) isCommand() {}
func (EditSceneBeat) isCommand() {}
func (DeleteSceneBeat) isCommand() {}
func (AddKeyEvent) isCommand() {}
func (EditKeyEvent) isCommand() {}
func (DeleteKeyEvent) isCommand() {}
func (AddWorldElement) isCommand() {}
func (EditWorldElement) isCommand() {}
func (AddCharacter) isCommand() {}
func (EditCharacter) isCommand() {}
func (DeleteCharacter) isCommand() {}
func (GenerateProse) isCommand() {}
func (ExpandBeat) isCommand() {}
func (SummarizeChapter) isCommand() {}
