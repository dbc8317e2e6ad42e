package variation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-narrate-kit/pkg/domain"
	"github.com/shouni/go-narrate-kit/pkg/textgen"
)

func fixedResponse(raw string) textgen.Generator {
	return textgen.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return raw, nil
	})
}

func TestOrchestrator_Generate(t *testing.T) {
	agent := domain.AgentProfile{StylePrompt: "estilo", PremisePrompt: "premissa"}

	t.Run("マーカー区切りのレスポンスを連番キーで抽出するのだ", func(t *testing.T) {
		raw := "[=== VARIAÇÃO 1 ===]\nprimeiro roteiro\n" +
			"[=== VARIAÇÃO 2 ===]\nsegundo roteiro\n" +
			"[=== VARIAÇÃO 3 ===]\nterceiro roteiro\n[=== FIM ===]"

		scripts, err := New(fixedResponse(raw)).Generate(context.Background(), "título", 3, agent)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if len(scripts) != 3 {
			t.Fatalf("抽出数が違うのだ: %d", len(scripts))
		}
		if scripts["variacao_1"] != "primeiro roteiro" {
			t.Errorf("variacao_1 の内容が違うのだ: %q", scripts["variacao_1"])
		}
		if scripts["variacao_3"] != "terceiro roteiro" {
			t.Errorf("末尾の完了マーカーが除去されていないのだ: %q", scripts["variacao_3"])
		}
	})

	t.Run("マーカーの大文字・小文字は区別しないのだ", func(t *testing.T) {
		raw := "[=== variação 1 ===]\num roteiro\n[=== Variação 2 ===]\noutro roteiro"
		scripts, err := New(fixedResponse(raw)).Generate(context.Background(), "título", 2, agent)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if len(scripts) != 2 {
			t.Errorf("抽出数が違うのだ: %d", len(scripts))
		}
	})

	t.Run("マーカーのないレスポンスは文字数で等分するのだ", func(t *testing.T) {
		raw := strings.Repeat("ã", 300)
		scripts, err := New(fixedResponse(raw)).Generate(context.Background(), "título", 3, agent)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if len(scripts) != 3 {
			t.Fatalf("等分数が違うのだ: %d", len(scripts))
		}
		total := scripts["variacao_1"] + scripts["variacao_2"] + scripts["variacao_3"]
		if total != raw {
			t.Error("等分した断片を連結しても元に戻らないのだ")
		}
	})

	t.Run("空のレスポンスはハード失敗なのだ", func(t *testing.T) {
		_, err := New(fixedResponse("   ")).Generate(context.Background(), "título", 2, agent)
		if !errors.Is(err, ErrNoVariations) {
			t.Errorf("ErrNoVariations になるはずなのだ: %v", err)
		}
	})

	t.Run("要求数はアングル数で頭打ちになるのだ", func(t *testing.T) {
		var gotPrompt string
		gen := textgen.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "[=== VARIAÇÃO 1 ===]\nroteiro", nil
		})

		if _, err := New(gen).Generate(context.Background(), "título", 10, agent); err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if !strings.Contains(gotPrompt, "Gere 5 roteiros") {
			t.Error("アングル数への切り詰めがプロンプトに反映されていないのだ")
		}
	})

	t.Run("生成呼び出しは常に1回だけなのだ", func(t *testing.T) {
		calls := 0
		gen := textgen.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			calls++
			return "[=== VARIAÇÃO 1 ===]\na\n[=== VARIAÇÃO 2 ===]\nb", nil
		})
		if _, err := New(gen).Generate(context.Background(), "título", 2, agent); err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if calls != 1 {
			t.Errorf("結合呼び出しは1回のはずなのだ: %d", calls)
		}
	})
}
