package workflow

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	imagedom "github.com/shouni/gemini-image-kit/ports"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-narrate-kit/pkg/domain"
)

// renderImages は台本に添える挿絵を並列生成し、保存先パスの一覧を返します。
// 枚数は設定の MaxImages で頭打ちにします。
func (m *Manager) renderImages(ctx context.Context, jobID string, media domain.VisualMedia) ([]string, error) {
	count := media.ImageCount
	if count > m.cfg.MaxImages {
		slog.Warn("画像枚数が上限を超えているため切り詰めます",
			"job", jobID, "requested", count, "max", m.cfg.MaxImages)
		count = m.cfg.MaxImages
	}
	if count <= 0 {
		return nil, nil
	}

	paths := make([]string, count)
	eg, egCtx := errgroup.WithContext(ctx)

	for i := 0; i < count; i++ {
		eg.Go(func() error {
			prompt := fmt.Sprintf("%s\n\nCena %d de %d.", media.PromptTemplate, i+1, count)
			resp, err := m.imageGen.GenerateMangaPanel(egCtx, imagedom.ImageGenerationRequest{
				Prompt:      prompt,
				AspectRatio: "16:9",
			})
			if err != nil {
				return fmt.Errorf("画像 %d/%d の生成に失敗しました: %w", i+1, count, err)
			}
			if resp == nil || len(resp.Data) == 0 {
				return fmt.Errorf("画像 %d/%d の応答が空でした", i+1, count)
			}

			mimeType := resp.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			path := fmt.Sprintf("%s/images/%s_%d.png", m.cfg.OutputPrefix, jobID, i+1)
			if err := m.writer.Write(egCtx, path, bytes.NewReader(resp.Data), mimeType); err != nil {
				return fmt.Errorf("画像の書き込みに失敗しました %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
