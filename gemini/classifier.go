package gemini

import (
	"context"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	languagepb "cloud.google.com/go/language/apiv1/languagepb"
	"github.com/googleapis/gax-go/v2"

	"github.com/datar-psa/textmetrics/api"
)

// textClassifier is the part of *language.Client used by ContentClassifier
type textClassifier interface {
	ClassifyText(ctx context.Context, req *languagepb.ClassifyTextRequest, opts ...gax.CallOption) (*languagepb.ClassifyTextResponse, error)
}

var _ textClassifier = (*language.Client)(nil)

// ContentClassifier labels text with the most confident Google Cloud Natural
// Language content category, e.g. "/Jobs & Education/Education"
type ContentClassifier struct {
	client        textClassifier
	minConfidence float64
	fallback      string
}

// ContentClassifierOptions configures a ContentClassifier
type ContentClassifierOptions struct {
	// MinConfidence discards categories below this confidence (0.0-1.0)
	MinConfidence float64
	// Fallback is returned when no category qualifies; empty means an error is returned instead
	Fallback string
}

// NewContentClassifier creates a labeler backed by a preconfigured *language.Client (auth handled by caller)
func NewContentClassifier(client *language.Client, opts ContentClassifierOptions) *ContentClassifier {
	var c textClassifier
	if client != nil {
		c = client
	}
	return newContentClassifier(c, opts)
}

func newContentClassifier(client textClassifier, opts ContentClassifierOptions) *ContentClassifier {
	return &ContentClassifier{
		client:        client,
		minConfidence: opts.MinConfidence,
		fallback:      opts.Fallback,
	}
}

// Label implements api.Labeler
func (c *ContentClassifier) Label(ctx context.Context, text string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("%w: language client is required", api.ErrLabelingFailed)
	}

	req := &languagepb.ClassifyTextRequest{
		Document: &languagepb.Document{
			Type: languagepb.Document_PLAIN_TEXT,
			Source: &languagepb.Document_Content{
				Content: text,
			},
		},
	}

	resp, err := c.client.ClassifyText(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: classify text failed: %v", api.ErrLabelingFailed, err)
	}

	best, bestConfidence := "", -1.0
	for _, cat := range resp.GetCategories() {
		conf := float64(cat.GetConfidence())
		if conf < c.minConfidence {
			continue
		}
		if conf > bestConfidence {
			best, bestConfidence = cat.GetName(), conf
		}
	}

	if best == "" {
		if c.fallback != "" {
			return c.fallback, nil
		}
		return "", fmt.Errorf("%w: no category above confidence %.2f", api.ErrLabelingFailed, c.minConfidence)
	}
	return best, nil
}

var _ api.Labeler = (*ContentClassifier)(nil)
