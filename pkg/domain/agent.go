package domain

import (
	"encoding/json"
	"fmt"
)

// AgentProfile は台本生成エージェントの設定一式です。
// 元システムの「エージェント」設定をジョブ実行に必要な範囲だけ持ち込んだもので、
// 永続化やCRUDはこのキットの責務外なのだ。
type AgentProfile struct {
	Name string `json:"name"`

	// PremisePrompt は物語の前提（テーマや世界観）を与えるプロンプトです。
	PremisePrompt string `json:"premise_prompt"`
	// StylePrompt はナレーターの人格・文体を定義するプロンプトです。
	StylePrompt string `json:"style_prompt"`
	// BlockStructure は台本の構成テンプレート（手動マーカー付き、または自由文）です。
	BlockStructure string `json:"block_structure"`

	// PrimaryLanguage はマスター台本の言語コード（例: "pt-BR"）です。
	PrimaryLanguage string `json:"primary_language"`
	// AdditionalLanguages は文化的適応の対象言語です。
	AdditionalLanguages []string `json:"additional_languages,omitempty"`

	// CulturalPrompt は文化的適応の前置き指示です。空なら既定文を使います。
	CulturalPrompt string `json:"cultural_prompt,omitempty"`

	// TTSEnabled が真のとき、言語ごとに音声合成まで行います。
	TTSEnabled bool                 `json:"tts_enabled"`
	TTSVoices  map[string]VoiceSpec `json:"tts_voices,omitempty"`

	// VariationCount が 2 以上のとき、独立したバリエーション台本を生成します。
	VariationCount int `json:"variation_count,omitempty"`

	// VisualMediaEnabled が真のとき、ジョブごとにイメージ画像も生成します。
	VisualMediaEnabled bool         `json:"visual_media_enabled,omitempty"`
	VisualMedia        *VisualMedia `json:"visual_media_config,omitempty"`
}

// VisualMedia はジョブに付随する画像生成の設定です。
type VisualMedia struct {
	ImageCount     int    `json:"image_count"`
	PromptTemplate string `json:"prompt_template"`
}

// ParseAgentProfile はJSONバイト列からエージェント設定を読み込みます。
func ParseAgentProfile(data []byte) (AgentProfile, error) {
	var agent AgentProfile
	if err := json.Unmarshal(data, &agent); err != nil {
		return AgentProfile{}, fmt.Errorf("エージェント設定のパースに失敗しました: %w", err)
	}
	if agent.PrimaryLanguage == "" {
		agent.PrimaryLanguage = "pt-BR"
	}
	return agent, nil
}

// Languages はマスター言語を先頭にした全対象言語のリストを返します。
// 重複した指定は取り除かれるのだ。
func (a AgentProfile) Languages() []string {
	seen := map[string]struct{}{a.PrimaryLanguage: {}}
	langs := []string{a.PrimaryLanguage}
	for _, l := range a.AdditionalLanguages {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		langs = append(langs, l)
	}
	return langs
}
