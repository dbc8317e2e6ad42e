package domain

import (
	"testing"
)

func TestParseAgentProfile(t *testing.T) {
	t.Run("マスター言語の省略時は pt-BR が補われるのだ", func(t *testing.T) {
		agent, err := ParseAgentProfile([]byte(`{"name": "narrador"}`))
		if err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if agent.PrimaryLanguage != "pt-BR" {
			t.Errorf("既定言語が違うのだ: %q", agent.PrimaryLanguage)
		}
	})

	t.Run("ボイス指定は文字列と構造体が混在できるのだ", func(t *testing.T) {
		raw := `{
			"name": "narrador",
			"tts_enabled": true,
			"tts_voices": {
				"pt-BR": "pt-BR-Neural2-B",
				"en-US": {"voice_id": "en-US-Neural2-D", "speaking_rate": 0.9}
			}
		}`
		agent, err := ParseAgentProfile([]byte(raw))
		if err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if agent.TTSVoices["pt-BR"].VoiceID != "pt-BR-Neural2-B" {
			t.Errorf("文字列形式のボイスが読めていないのだ: %+v", agent.TTSVoices["pt-BR"])
		}
		if rate := agent.TTSVoices["en-US"].SpeakingRate; rate == nil || *rate != 0.9 {
			t.Errorf("構造体形式のボイスが読めていないのだ: %+v", agent.TTSVoices["en-US"])
		}
	})

	t.Run("壊れたJSONはエラーなのだ", func(t *testing.T) {
		if _, err := ParseAgentProfile([]byte(`{invalid`)); err == nil {
			t.Fatal("エラーになるはずなのだ")
		}
	})
}

func TestAgentProfile_Languages(t *testing.T) {
	t.Run("マスター言語が先頭で、重複は取り除かれるのだ", func(t *testing.T) {
		agent := AgentProfile{
			PrimaryLanguage:     "pt-BR",
			AdditionalLanguages: []string{"en-US", "pt-BR", "es-ES", "en-US"},
		}
		langs := agent.Languages()
		want := []string{"pt-BR", "en-US", "es-ES"}
		if len(langs) != len(want) {
			t.Fatalf("言語数が違うのだ: %v", langs)
		}
		for i, l := range want {
			if langs[i] != l {
				t.Errorf("順序が違うのだ。期待: %v, 実際: %v", want, langs)
				break
			}
		}
	})
}

func TestBlocks_Renumber(t *testing.T) {
	t.Run("連番は常に1始まりで振り直されるのだ", func(t *testing.T) {
		bs := Blocks{{Number: 7}, {Number: 2}, {Number: 99}}
		bs.Renumber()
		for i, b := range bs {
			if b.Number != i+1 {
				t.Errorf("連番が違うのだ: %d", b.Number)
			}
		}
	})
}
