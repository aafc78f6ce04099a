// Package prompt 根据实体状态组装发送给模型的提示词
//
// 本包只包含纯函数：相同的实体状态与输入总是得到相同的提示词。
package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"story-engine/internal/domain/entity"
)

// ContextWords 上下文窗口保留的最大词数
const ContextWords = 2000

const noCharacters = "no characters"

// Kind 输入类型
type Kind int

const (
	// KindProse 场景扩写
	KindProse Kind = iota
	// KindBeat 单个节拍展开
	KindBeat
)

// String 返回类型名称（用于指标标签）
func (k Kind) String() string {
	if k == KindBeat {
		return "beat"
	}
	return "prose"
}

// DefaultPreset 返回该类型的默认指令
func (k Kind) DefaultPreset() string {
	if k == KindBeat {
		return DefaultBeatPreset
	}
	return DefaultProsePreset
}

func (k Kind) inputLabel() string {
	if k == KindBeat {
		return "Beat/Scene Input"
	}
	return "Scene"
}

// Request 组装提示词所需的全部输入
type Request struct {
	Kind Kind
	// Preset 为空时使用 Kind 的默认指令
	Preset string
	// Input 场景或节拍文本
	Input string
	// Characters 故事的全部角色（按故事顺序）
	Characters []*entity.Character
	// Selection 显式选择的角色 ID；nil 表示未选择，按 Input 自动识别
	Selection []uint
	// ChapterText 章节已保存的正文
	ChapterText   string
	WorldElements []*entity.WorldElement
}

// Build 按固定顺序拼接：指令、角色、输入、上下文窗口、世界观
func Build(req Request) string {
	preset := req.Preset
	if preset == "" {
		preset = req.Kind.DefaultPreset()
	}

	var b strings.Builder
	b.WriteString(preset)
	b.WriteString("\n\n")

	if req.Selection != nil {
		b.WriteString("Character Information:\n")
		b.WriteString(RenderCharacterDossiers(SelectCharacters(req.Characters, req.Selection)))
		b.WriteString("\n\n")
	} else {
		b.WriteString("Characters in scene: ")
		b.WriteString(RenderCharacterNames(DetectCharacters(req.Input, req.Characters)))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s: %s\n\n", req.Kind.inputLabel(), req.Input)
	fmt.Fprintf(&b, "Recent chapter context (last %d words):\n%s\n\n", ContextWords, ContextWindow(req.ChapterText, ContextWords))
	b.WriteString("World Building Elements:\n")
	b.WriteString(RenderWorldElements(req.WorldElements))

	return b.String()
}

// DetectCharacters 返回在 input 中以完整单词出现（不区分大小写）的角色名，保持故事顺序；
// input 为空时返回全部角色名
func DetectCharacters(input string, characters []*entity.Character) []string {
	names := make([]string, 0, len(characters))
	for _, c := range characters {
		if input == "" || mentions(input, c.Name) {
			names = append(names, c.Name)
		}
	}
	return names
}

func mentions(text, name string) bool {
	if name == "" {
		return false
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
	if err != nil {
		return false
	}
	// RE2 的 \b 只识别 ASCII 单词字符，这里按 Unicode 字母/数字逐个候选判定边界
	for offset := 0; offset < len(text); {
		loc := re.FindStringIndex(text[offset:])
		if loc == nil {
			return false
		}
		start, end := offset+loc[0], offset+loc[1]
		if boundaryAt(text, start) && boundaryAt(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// boundaryAt 报告 text 的字节位置 i 两侧是否一侧为单词字符、另一侧不是
func boundaryAt(text string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SelectCharacters 按 ID 解析显式选择的角色，保持故事顺序，忽略未知 ID
func SelectCharacters(characters []*entity.Character, ids []uint) []*entity.Character {
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	selected := make([]*entity.Character, 0, len(ids))
	for _, c := range characters {
		if _, ok := wanted[c.ID]; ok {
			selected = append(selected, c)
		}
	}
	return selected
}

// RenderCharacterDossiers 渲染角色档案，各档案之间空一行
func RenderCharacterDossiers(characters []*entity.Character) string {
	if len(characters) == 0 {
		return noCharacters
	}
	blocks := make([]string, 0, len(characters))
	for _, c := range characters {
		block := "Name: " + c.Name
		if c.Traits != "" {
			block += "\nTraits: " + c.Traits
		}
		if c.Backstory != "" {
			block += "\nBackstory: " + c.Backstory
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

// RenderCharacterNames 以逗号分隔角色名
func RenderCharacterNames(names []string) string {
	if len(names) == 0 {
		return noCharacters
	}
	return strings.Join(names, ", ")
}

// ContextWindow 按空白切词，保留最后 limit 个词并以单个空格连接
func ContextWindow(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) > limit {
		words = words[len(words)-limit:]
	}
	return strings.Join(words, " ")
}

// RenderWorldElements 每个元素一行 "- 分类: 描述"，没有元素时为 "None"
func RenderWorldElements(elements []*entity.WorldElement) string {
	if len(elements) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(elements))
	for _, w := range elements {
		lines = append(lines, fmt.Sprintf("- %s: %s", w.Category, w.Description))
	}
	return strings.Join(lines, "\n")
}

// WordCount 统计词数
func WordCount(text string) int {
	return len(strings.Fields(text))
}
