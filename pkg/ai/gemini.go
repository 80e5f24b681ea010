package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"postcraft/pkg/config"
	"postcraft/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var (
	ErrEmptyResponse = errors.New("model returned no content")
	ErrNoImage       = errors.New("model returned no image")
)

type ImproveRequest struct {
	Text     string `json:"text"`
	Platform string `json:"platform"`
}

type ImproveResult struct {
	ImprovedText string `json:"improvedText"`
	Hashtags     string `json:"hashtags"`
}

// generator is the part of *genai.Models the client needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient serves both the writing and the image operations. Calls are
// not retried; a failed call is reported to the caller as is.
type GeminiClient struct {
	models     generator
	textModel  string
	imageModel string
	limiter    *rate.Limiter
	log        *logger.Logger
}

func NewGeminiClient(ctx context.Context, cfg *config.Config, log *logger.Logger) (*GeminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGeminiClient(cli.Models, cfg.GeminiTextModel, cfg.GeminiImageModel, newLimiter(cfg.AIRPS, cfg.AIBurst), log), nil
}

func newGeminiClient(models generator, textModel, imageModel string, limiter *rate.Limiter, log *logger.Logger) *GeminiClient {
	return &GeminiClient{
		models:     models,
		textModel:  textModel,
		imageModel: imageModel,
		limiter:    limiter,
		log:        log.With("component", "gemini"),
	}
}

// newLimiter returns nil (unlimited) for a non-positive rate.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

func (g *GeminiClient) wait(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}

const improvePrompt = `You are an expert social media copywriter.
Rewrite the post below so it is clear, engaging and suited to these platforms: %s.
Keep the author's meaning and language. Do not add hashtags to the text itself.
Then suggest relevant hashtags as a single space-separated string, each starting with #.

Post:
%s`

var improveSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"improvedText": {Type: genai.TypeString, Description: "The rewritten post text."},
		"hashtags":     {Type: genai.TypeString, Description: "Space-separated hashtags."},
	},
	Required: []string{"improvedText", "hashtags"},
}

func (g *GeminiClient) ImproveWriting(ctx context.Context, req ImproveRequest) (*ImproveResult, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	started := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.textModel,
		[]*genai.Content{{Parts: []*genai.Part{{Text: fmt.Sprintf(improvePrompt, req.Platform, req.Text)}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   improveSchema,
		},
	)
	if err != nil {
		g.log.Error("improve writing failed after %s: %v", time.Since(started), err)
		return nil, err
	}

	raw := firstText(resp)
	if raw == "" {
		return nil, ErrEmptyResponse
	}

	var out ImproveResult
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode improve response: %w", err)
	}
	if strings.TrimSpace(out.ImprovedText) == "" {
		return nil, ErrEmptyResponse
	}
	out.Hashtags = strings.Join(strings.Fields(out.Hashtags), " ")

	g.log.Debug("improve writing took %s", time.Since(started))
	return &out, nil
}

var imageSafety = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockLowAndAbove},
}

// GenerateImage returns the first inline image of the response as a data URI.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if err := g.wait(ctx); err != nil {
		return "", err
	}

	started := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.imageModel,
		[]*genai.Content{{Parts: []*genai.Part{{Text: "Generate an image based on the following prompt: " + prompt}}}},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			SafetySettings:     imageSafety,
		},
	)
	if err != nil {
		g.log.Error("image generation failed after %s: %v", time.Since(started), err)
		return "", err
	}

	blob := firstImage(resp)
	if blob == nil {
		return "", ErrNoImage
	}
	g.log.Debug("image generation took %s", time.Since(started))
	return DataURI(blob.MIMEType, blob.Data), nil
}

func firstImage(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}
