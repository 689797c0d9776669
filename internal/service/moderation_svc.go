package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// spamVerdict AI 返回的结构化判定
type spamVerdict struct {
	Score  float64 `json:"score"`  // 0~1，越高越像垃圾内容
	Reason string  `json:"reason"` // 判定依据，仅日志用
}

// ModerationService 用 Gemini 给被举报内容打垃圾分
// ApiKey 为空时服务不可用，调用方应传 nil（见 cmd/main.go 装配）
type ModerationService struct {
	ApiKey       string
	ModelVersion string // 支持配置，如 "gemini-2.5-flash"
}

// NewModerationService 支持传入模型版本
func NewModerationService(apiKey string, modelVersion string) *ModerationService {
	if modelVersion == "" {
		modelVersion = "gemini-2.5-flash"
	}
	return &ModerationService{
		ApiKey:       apiKey,
		ModelVersion: modelVersion,
	}
}

// ScoreSpam 给文本打垃圾分，返回 0~1
func (s *ModerationService) ScoreSpam(ctx context.Context, content string) (float64, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.ApiKey))
	if err != nil {
		return 0, fmt.Errorf("Gemini 初始化失败: %v", err)
	}
	defer client.Close()

	modelAI := client.GenerativeModel(s.ModelVersion)
	modelAI.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf(`
        You are a content moderator for a merchant review site.
        Rate how likely the following user content is spam (ads, scams,
        link farms, bot-generated text). Output JSON only.

        Content:
        """%s"""

        Output Schema (JSON):
        {
            "score": 0.0,
            "reason": "string"
        }
    `, content)

	resp, err := modelAI.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, fmt.Errorf("AI 判定失败: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return 0, fmt.Errorf("AI 返回为空")
	}

	var rawJSON string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			rawJSON = string(txt)
			break
		}
	}

	// 清洗一下可能存在的 markdown 符号 (```json ... ```)
	rawJSON = strings.TrimPrefix(rawJSON, "```json")
	rawJSON = strings.TrimPrefix(rawJSON, "```")
	rawJSON = strings.TrimSuffix(rawJSON, "```")

	var verdict spamVerdict
	if err := json.Unmarshal([]byte(rawJSON), &verdict); err != nil {
		return 0, fmt.Errorf("JSON 解析失败: %v | 原始数据: %s", err, rawJSON)
	}

	if verdict.Score < 0 {
		verdict.Score = 0
	}
	if verdict.Score > 1 {
		verdict.Score = 1
	}
	return verdict.Score, nil
}
