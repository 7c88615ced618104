package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zafranhaider/AI-TODO-APP/config"
)

// Language 翻译服务支持的语言
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// TranslateService 封装LibreTranslate兼容服务的调用
type TranslateService struct {
	baseURL string
	client  *http.Client
}

const (
	languagesTimeout = 8 * time.Second
	translateTimeout = 12 * time.Second
)

func NewTranslateService(baseURL string) *TranslateService {
	return &TranslateService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// TranslateText 将文本翻译为用户给定的目标语言（名称或ISO代码均可）。
// 任何失败都返回false表示"未应用翻译"，调用方保持原状态不变，不会panic。
func (s *TranslateService) TranslateText(ctx context.Context, text, targetLabel string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	// 获取语言目录失败时降级为空目录，继续走启发式解析
	langs, err := s.SupportedLanguages(ctx)
	if err != nil {
		config.Logger.Warnw("获取语言目录失败，使用空目录继续",
			"error", err,
		)
		langs = nil
	}

	code, err := ResolveLanguageCode(targetLabel, langs)
	if errors.Is(err, ErrNoMatch) {
		config.Logger.Debugw("语言目录无精确匹配，使用启发式代码",
			"label", targetLabel,
			"code", code,
		)
	}

	translated, err := s.translate(ctx, text, code)
	if err != nil {
		config.Logger.Errorw("翻译请求失败",
			"error", err,
			"target", code,
		)
		return "", false
	}

	return translated, true
}

// SupportedLanguages 获取翻译服务支持的语言目录
func (s *TranslateService) SupportedLanguages(ctx context.Context) ([]Language, error) {
	ctx, cancel := context.WithTimeout(ctx, languagesTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/languages", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: languages returned status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var langs []Language
	if err := json.NewDecoder(resp.Body).Decode(&langs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}
	return langs, nil
}

// ResolveLanguageCode 将用户输入的语言标签解析为翻译服务语言代码。
// 目录中有精确匹配（代码或名称，不区分大小写）时返回目录代码；
// 否则返回启发式猜测的代码并附带ErrNoMatch：2-3字符的标签直接当代码用，
// 再试标签的第一个词，最后兜底原样使用整个标签——可能是无效代码，
// 由翻译服务拒绝，表现为普通的翻译失败。
func ResolveLanguageCode(label string, langs []Language) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))

	for _, lang := range langs {
		if strings.ToLower(lang.Code) == normalized || strings.ToLower(lang.Name) == normalized {
			return lang.Code, nil
		}
	}

	if len(normalized) == 2 || len(normalized) == 3 {
		return normalized, ErrNoMatch
	}

	// 例如 'portuguese (brazil)' -> 'portuguese'
	if fields := strings.Fields(normalized); len(fields) > 0 {
		if first := fields[0]; len(first) == 2 || len(first) == 3 {
			return first, ErrNoMatch
		}
	}

	return normalized, ErrNoMatch
}

// translate 调用 /translate 接口
func (s *TranslateService) translate(ctx context.Context, text, targetCode string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, translateTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "auto",
		"target": targetCode,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: translate returned status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("%w: missing translatedText", ErrUnparseableResponse)
	}

	return result.TranslatedText, nil
}
