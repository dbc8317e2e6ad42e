package domain

import (
	"encoding/json"
	"fmt"
)

// 話速・ピッチの既定値。Google TTS のニュートラル設定に合わせてあります。
const (
	DefaultSpeakingRate = 1.0
	DefaultPitch        = 0.0
)

// VoiceConfig は音声合成1回分の正規化済みボイス設定です。
// VoiceSpec.Resolve() を通してのみ生成され、以降の層はこの形だけを扱います。
type VoiceConfig struct {
	VoiceID      string
	LanguageCode string
	SpeakingRate float64
	Pitch        float64
}

// VoiceSpec は設定ファイル上のボイス指定を表すタグ付きユニオンなのだ。
// JSON では素の文字列（voice_id のみ）と構造体（voice_id + 話速 + ピッチ）の
// どちらの形でも書けるようにしてあり、利用箇所で一度だけ Resolve する。
type VoiceSpec struct {
	VoiceID      string   `json:"voice_id"`
	SpeakingRate *float64 `json:"speaking_rate,omitempty"`
	Pitch        *float64 `json:"pitch,omitempty"`
}

// UnmarshalJSON は "pt-BR-Neural2-B" のような裸の文字列と、
// {"voice_id": ..., "speaking_rate": ...} 形式の両方を受け付けます。
func (v *VoiceSpec) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("ボイスIDのパースに失敗しました: %w", err)
		}
		*v = VoiceSpec{VoiceID: id}
		return nil
	}

	type plain VoiceSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("ボイス設定のパースに失敗しました: %w", err)
	}
	*v = VoiceSpec(p)
	return nil
}

// Resolve は言語コードを添えて正規化済みの VoiceConfig に変換します。
// 未指定の話速・ピッチには既定値を補うのだ。
func (v VoiceSpec) Resolve(languageCode string) VoiceConfig {
	cfg := VoiceConfig{
		VoiceID:      v.VoiceID,
		LanguageCode: languageCode,
		SpeakingRate: DefaultSpeakingRate,
		Pitch:        DefaultPitch,
	}
	if v.SpeakingRate != nil {
		cfg.SpeakingRate = *v.SpeakingRate
	}
	if v.Pitch != nil {
		cfg.Pitch = *v.Pitch
	}
	return cfg
}

// DefaultVoices は言語コードごとの既定ボイスです。
// エージェント設定に tts_voices の指定がない言語はここから引き当てます。
var DefaultVoices = map[string]VoiceSpec{
	"pt-BR": {VoiceID: "pt-BR-Neural2-B"},
	"en-US": {VoiceID: "en-US-Neural2-D"},
	"es-ES": {VoiceID: "es-ES-Neural2-A"},
	"fr-FR": {VoiceID: "fr-FR-Neural2-A"},
	"de-DE": {VoiceID: "de-DE-Neural2-B"},
	"it-IT": {VoiceID: "it-IT-Neural2-A"},
	"ja-JP": {VoiceID: "ja-JP-Neural2-B"},
}

// VoiceFor は言語コードに対応するボイス設定を返します。
// エージェント側の指定を優先し、なければ既定ボイス、それもなければ false を返すのだ。
func VoiceFor(languageCode string, voices map[string]VoiceSpec) (VoiceConfig, bool) {
	if spec, ok := voices[languageCode]; ok && spec.VoiceID != "" {
		return spec.Resolve(languageCode), true
	}
	if spec, ok := DefaultVoices[languageCode]; ok {
		return spec.Resolve(languageCode), true
	}
	return VoiceConfig{}, false
}
