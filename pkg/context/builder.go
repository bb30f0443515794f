package context

import (
	"fmt"
	"strings"

	"github.com/easyops/datachat-go/pkg/dataset"
)

// Domain 表示数据集所属领域，决定行为指令的措辞。
type Domain string

const (
	// DomainEnergy 能源消费数据
	DomainEnergy Domain = "energy"
	// DomainFilm 电影评分数据
	DomainFilm Domain = "film"
)

// 各领域的人设陈述
const (
	energyPersona = "你是一名能源数据分析助手，基于给定的各国能源消费统计回答问题。"
	filmPersona   = "你是一名电影数据分析助手，基于给定的电影评分与票房数据回答问题。"
)

// 各领域的行为指令（结构一致，措辞随领域微调）
const (
	energyDirective = "请仅依据上方提供的数据回答。若数据不足以回答，请明确说明数据不足；" +
		"如需借助一般能源常识补充，必须显式标注该部分并非来自给定数据。"
	filmDirective = "请仅依据上方提供的数据回答。若数据不足以回答，请明确说明数据不足；" +
		"如需借助一般影视常识补充，必须显式标注该部分并非来自给定数据。"
)

// PromptBuilder 将人设、过滤描述、数据块与注记组装为单条指令串。
//
// 纯函数式组装：相同输入产生相同输出。
type PromptBuilder struct {
	persona   string
	directive string
}

// PromptOption 配置 PromptBuilder。
type PromptOption func(*PromptBuilder)

// WithDomain 按领域选择内置的人设与行为指令。
func WithDomain(domain Domain) PromptOption {
	return func(b *PromptBuilder) {
		switch domain {
		case DomainFilm:
			b.persona = filmPersona
			b.directive = filmDirective
		default:
			b.persona = energyPersona
			b.directive = energyDirective
		}
	}
}

// WithPersona 覆盖人设陈述。
func WithPersona(persona string) PromptOption {
	return func(b *PromptBuilder) {
		b.persona = persona
	}
}

// WithDirective 覆盖行为指令。
func WithDirective(directive string) PromptOption {
	return func(b *PromptBuilder) {
		b.directive = directive
	}
}

// NewPromptBuilder 创建提示词构建器，默认能源领域。
func NewPromptBuilder(opts ...PromptOption) *PromptBuilder {
	b := &PromptBuilder{
		persona:   energyPersona,
		directive: energyDirective,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build 渲染指令串：{人设} + {过滤描述} + {数据块} + {注记} + {行为指令}。
//
// 空子集渲染显式的空数据块，输出仍是结构完整的指令串。
func (b *PromptBuilder) Build(filterDesc string, subset Subset) string {
	var sections []string

	sections = append(sections, b.persona)
	sections = append(sections, "[数据范围]\n"+filterDesc)

	block := RenderBlock(subset)
	if block == "" {
		sections = append(sections, "[数据]\n（当前过滤条件下没有匹配的数据行）")
	} else {
		sections = append(sections, "[数据]\n"+block)
	}

	if subset.Note != "" {
		sections = append(sections, subset.Note)
	}

	sections = append(sections, "[要求]\n"+b.directive)

	return strings.Join(sections, "\n\n")
}

// DescribeCriteria 生成当前过滤条件的人类可读描述。
func DescribeCriteria(c dataset.Criteria, s *dataset.Schema) string {
	var parts []string

	if c.Entity != "" {
		parts = append(parts, fmt.Sprintf("%s=%s 的全部行", s.EntityColumn, c.Entity))
	} else {
		parts = append(parts, "覆盖全部实体的横截面")
	}

	if c.Year != 0 && s.PeriodColumn != "" {
		parts = append(parts, fmt.Sprintf("%s=%d", s.PeriodColumn, c.Year))
	}

	if len(c.Tags) > 0 && s.TagColumn != "" {
		parts = append(parts, fmt.Sprintf("%s 包含 %s", s.TagColumn, strings.Join(c.Tags, "/")))
	}

	return strings.Join(parts, "，")
}

// ModeFor 根据过滤条件推导选择模式：锁定单实体时用单实体模式。
func ModeFor(c dataset.Criteria) Mode {
	if c.Entity != "" {
		return ModeSingleEntity
	}
	return ModeAggregate
}
