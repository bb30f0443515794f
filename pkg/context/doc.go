// Package context 提供数据问答的上下文工程能力。
//
// 本包实现从过滤后的行集到补全请求指令串的流水线：
//
//   - 行数上限内的代表性子集选择（单实体模式 / 聚合模式）
//   - 截断与采样的说明性注记
//   - 子集的分隔文本序列化与反解析
//   - Token 计数与可选的 Token 预算截断
//   - 人设 + 过滤描述 + 数据块 + 行为指令的提示词组装
//
// # 基本用法
//
//	selector := context.NewSelector(context.DefaultConfig())
//	subset := selector.Select(rows, schema, context.ModeSingleEntity)
//
//	builder := context.NewPromptBuilder(context.WithDomain(context.DomainEnergy))
//	instruction := builder.Build(filterDesc, subset)
//
// 选择策略对固定输入是字节级可复现的：排序稳定，平局按原始行序裁决。
package context
