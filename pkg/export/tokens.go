package export

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// TokenCounter counts the tokens in a block of text. The pipeline treats a
// nil counter as the 4-characters-per-token estimate used for chunk budgets.
type TokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.EncodeOrdinary(text))
}

// NewTokenCounter returns a tiktoken-backed counter for the given model, or a
// nil counter when model is empty so totals fall back to the character
// estimate.
func NewTokenCounter(model string) (TokenCounter, error) {
	if model == "" {
		return nil, nil
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenizer for model %q: %w", model, err)
	}
	return &tiktokenCounter{enc: enc}, nil
}
