// Package ai generates illustrations for admin-authored content through an
// OpenAI-compatible images endpoint.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/svbf/portal/pkg/config"
)

// ErrDisabled is returned when image generation is not configured.
var ErrDisabled = errors.New("image generation is disabled")

// Generator produces illustrations for news and competition pages.
type Generator struct {
	client *openai.Client
	cfg    config.ImagesConfig
}

// NewGenerator creates an image generator from the images configuration.
func NewGenerator(cfg config.ImagesConfig) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

// Illustrate renders one image for the prompt and returns it base64-encoded.
func (g *Generator) Illustrate(ctx context.Context, prompt string) (string, error) {
	if !g.cfg.Enabled {
		return "", ErrDisabled
	}
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("empty prompt")
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.cfg.Model,
		N:              1,
		Size:           g.cfg.Size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", errors.New("no image in response")
	}

	return resp.Data[0].B64JSON, nil
}
