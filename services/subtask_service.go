package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zafranhaider/AI-TODO-APP/config"
)

// TextGenerator 文本生成能力。nil表示未配置生成服务，
// 此时子任务生成只走确定性的启发式回退。
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type SubtaskService struct {
	generator TextGenerator
	timeout   time.Duration
}

func NewSubtaskService(generator TextGenerator) *SubtaskService {
	return &SubtaskService{
		generator: generator,
		timeout:   20 * time.Second,
	}
}

const subtaskSystemPrompt = "You are an assistant that converts a single to-do item into a concise ordered list of " +
	"clear subtasks. Output only a JSON array of subtasks (strings)."

// 回退模板：研究 -> 规划 -> 实现 -> 测试 -> 收尾
var fallbackTemplates = []string{
	"Research / gather requirements",
	"Break down tasks and estimate time",
	"Implement main functionality",
	"Test and fix bugs",
	"Deploy / finalize",
}

// 按顺序尝试的分隔符
var fallbackSeparators = []string{":", "-", "—", ";", ","}

// GenerateSubtasks 将待办文本拆分为子任务列表。
// 生成服务不可用或失败时自动降级到启发式回退，整体不会失败。
func (s *SubtaskService) GenerateSubtasks(ctx context.Context, text string, maxCount int) []string {
	if s.generator != nil {
		subtasks, err := s.generateViaModel(ctx, text, maxCount)
		if err == nil {
			return subtasks
		}
		config.Logger.Errorw("AI生成子任务失败，使用回退策略",
			"error", err,
			"textLength", len(text),
		)
	}
	return FallbackSubtasks(text, maxCount)
}

// generateViaModel 调用生成服务并解析JSON数组回复
func (s *SubtaskService) generateViaModel(ctx context.Context, text string, maxCount int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	userPrompt := fmt.Sprintf(
		"To-do item: %s\n\nReturn up to %d subtasks as a JSON array. Keep items short (under 80 chars each).",
		text, maxCount,
	)

	raw, err := s.generator.GenerateText(ctx, subtaskSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	parsed, err := parseSubtaskResponse(raw, maxCount)
	if err != nil {
		return nil, err
	}
	return sanitizeSubtasks(parsed, maxCount), nil
}

// parseSubtaskResponse 优先按JSON数组解析。合法JSON但不是数组
// 视为不可解析；只有完全不是JSON的回复才按行恢复。
func parseSubtaskResponse(raw string, maxCount int) ([]string, error) {
	raw = strings.TrimSpace(raw)

	if json.Valid([]byte(raw)) {
		var arr []any
		if err := json.Unmarshal([]byte(raw), &arr); err != nil {
			return nil, fmt.Errorf("%w: valid JSON but not an array", ErrUnparseableResponse)
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			text, ok := item.(string)
			if !ok {
				text = fmt.Sprint(item)
			}
			if text = strings.TrimSpace(text); text != "" {
				out = append(out, text)
			}
		}
		return out, nil
	}

	// 按行恢复：去掉行首的项目符号、横线和空白
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "-*• .\t"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxCount {
			break
		}
	}
	if len(lines) > 0 {
		return lines, nil
	}

	return nil, ErrUnparseableResponse
}

// FallbackSubtasks 启发式子任务拆分。确定性、无副作用：
// 1. 含换行按换行拆分
// 2. 否则按顺序尝试分隔符，取第一个能拆出多段的
// 3. 都不行则套用通用五步模板
func FallbackSubtasks(text string, maxCount int) []string {
	text = strings.TrimSpace(text)
	var out []string

	if strings.Contains(text, "\n") {
		for _, part := range strings.Split(text, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) > maxCount {
			out = out[:maxCount]
		}
	}

	if len(out) == 0 {
		for _, sep := range fallbackSeparators {
			if !strings.Contains(text, sep) {
				continue
			}
			var parts []string
			for _, part := range strings.Split(text, sep) {
				if part = strings.TrimSpace(part); part != "" {
					parts = append(parts, part)
				}
			}
			if len(parts) > 1 {
				if len(parts) > maxCount {
					parts = parts[:maxCount]
				}
				out = parts
				break
			}
		}
	}

	if len(out) == 0 {
		first := "Start: " + text
		if utf8.RuneCountInString(text) >= 80 {
			first = string([]rune(text)[:80])
		}
		out = append([]string{first}, fallbackTemplates...)
		if len(out) > maxCount {
			out = out[:maxCount]
		}
	}

	return sanitizeSubtasks(out, maxCount)
}

// sanitizeSubtasks 过滤空项和超长项并截断到maxCount
func sanitizeSubtasks(entries []string, maxCount int) []string {
	if maxCount < 0 {
		maxCount = 0
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry == "" || utf8.RuneCountInString(entry) >= 300 {
			continue
		}
		if len(out) == maxCount {
			break
		}
		out = append(out, entry)
	}
	return out
}
