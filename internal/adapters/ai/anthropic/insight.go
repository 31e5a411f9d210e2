// Package anthropic adapts the Anthropic Messages API to the signals
// InsightPort. Optional: detection runs identically without it
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"brandgate/internal/core/ucr"
	"brandgate/internal/platform/config"
	perr "brandgate/internal/platform/errors"
	"brandgate/internal/services/signals/domain"
)

// Options configures the adapter; model and budget come from config, never
// from code
type Options struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// FromConf reads adapter options under the given prefix
// (API_KEY, MODEL, MAX_TOKENS)
func FromConf(cfg config.Conf) Options {
	return Options{
		APIKey:    cfg.MayString("API_KEY", ""),
		Model:     cfg.MayString("MODEL", ""),
		MaxTokens: cfg.MayInt("MAX_TOKENS", 1024),
	}
}

// Enabled reports whether the adapter has enough config to run
func (o Options) Enabled() bool { return o.APIKey != "" && o.Model != "" }

// Client implements domain.InsightPort over the Anthropic SDK
type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int
}

// New builds the adapter or fails if options are incomplete
func New(o Options) (*Client, error) {
	if !o.Enabled() {
		return nil, perr.Invalidf("anthropic adapter requires API_KEY and MODEL")
	}
	return &Client{
		api:       anthropic.NewClient(option.WithAPIKey(o.APIKey)),
		model:     o.Model,
		maxTokens: o.MaxTokens,
	}, nil
}

const systemPrompt = "You are a competitive intelligence analyst. " +
	"Given detected competitive signals for a brand, reply with short, " +
	"concrete guidance on how the brand should respond. Plain text, no preamble."

// GenerateInsights asks the model for guidance on the given signals
func (c *Client) GenerateInsights(
	ctx context.Context,
	signals []domain.Signal,
	brand ucr.Brand,
) (string, error) {
	if len(signals) == 0 {
		return "", nil
	}

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt(signals, brand))),
		},
	})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "anthropic messages")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func prompt(signals []domain.Signal, brand ucr.Brand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Brand: %s (%s), industry: %s, target market: %s\n\nSignals:\n",
		brand.Name, brand.Domain, brand.Industry, brand.TargetMarket)
	for i, s := range signals {
		fmt.Fprintf(&b, "%d. [%s/%s] %s", i+1, s.Type, s.Severity, s.Title)
		if s.Competitor != "" {
			fmt.Fprintf(&b, " (competitor: %s)", s.Competitor)
		}
		b.WriteString("\n")
		if s.Description != "" {
			fmt.Fprintf(&b, "   %s\n", s.Description)
		}
	}
	return b.String()
}

var _ domain.InsightPort = (*Client)(nil)
