// Package audio は、適応済み台本をチャンク単位で音声合成し、
// 1本のナレーション音声へ連結する段階です。
package audio

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

// SpeechSynthesizer はチャンク1つ分の音声合成の契約です。
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, voice domain.VoiceConfig) ([]byte, error)
}

// GoogleSynthesizer は Google Cloud Text-to-Speech による実装です。
type GoogleSynthesizer struct {
	client *texttospeech.Client
}

var _ SpeechSynthesizer = (*GoogleSynthesizer)(nil)

// NewGoogleSynthesizer は TTS クライアントをラップした合成器を返します。
// クライアントのライフサイクル（Close）は呼び出し側の責務です。
func NewGoogleSynthesizer(client *texttospeech.Client) *GoogleSynthesizer {
	return &GoogleSynthesizer{client: client}
}

// Synthesize はテキスト1チャンクを MP3 バイト列に合成します。
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string, voice domain.VoiceConfig) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.VoiceID,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  voice.SpeakingRate,
			Pitch:         voice.Pitch,
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("audio: 音声合成に失敗しました (voice=%s): %w", voice.VoiceID, err)
	}
	return resp.AudioContent, nil
}
