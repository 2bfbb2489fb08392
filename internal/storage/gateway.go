package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

// FetchAudio signs a download URL for audioRef and returns the whole object.
func (g *implGateway) FetchAudio(ctx context.Context, audioRef string) ([]byte, error) {
	signedURL, err := g.signer.SignedURL(ctx, audioRef, SignedURLExpiry)
	if err != nil {
		return nil, model.NewStepError(model.StepSignURL, model.KindInput,
			fmt.Errorf("unable to create signed URL for %s: %w", audioRef, err))
	}

	g.logger.Debug(ctx, "Downloading audio: %s", audioRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return nil, model.NewStepError(model.StepDownload, model.KindTransport, fmt.Errorf("build request: %w", err))
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, model.NewStepError(model.StepDownload, model.KindTransport, fmt.Errorf("get audio: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, model.NewStepError(model.StepDownload, model.KindTransport,
			fmt.Errorf("get audio: unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewStepError(model.StepDownload, model.KindTransport, fmt.Errorf("read audio body: %w", err))
	}

	g.logger.Info(ctx, "Audio downloaded: %s (%d bytes)", audioRef, len(data))
	return data, nil
}
