// Package tokenizer estimates token counts for prompt text using tiktoken
// encodings.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/temirov/codeprompt/internal/types"
)

// DefaultEncodingName is used when no encoding is requested or the requested
// encoding is unknown.
const DefaultEncodingName = "cl100k_base"

// fallbackWarningDetailFormat reports the degradation to the default encoding.
const fallbackWarningDetailFormat = "unknown encoding %q; falling back to %s"

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// tiktokenCounter implements Counter over a tiktoken encoding.
type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name returns the encoding name backing the counter.
func (counter tiktokenCounter) Name() string {
	return counter.name
}

// CountString returns the number of tokens the encoding produces for input.
func (counter tiktokenCounter) CountString(input string) (int, error) {
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}

// NewCounter returns a Counter for the requested encoding name. An unknown
// name degrades to DefaultEncodingName with a recorded warning; only a failure
// to initialize the default encoding is an error.
func NewCounter(encodingName string) (Counter, []types.Warning, error) {
	requestedName := strings.TrimSpace(encodingName)
	if requestedName == "" {
		requestedName = DefaultEncodingName
	}

	encoding, encodingError := tiktoken.GetEncoding(requestedName)
	if encodingError == nil {
		return tiktokenCounter{encoding: encoding, name: requestedName}, nil, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(DefaultEncodingName)
	if fallbackError != nil {
		return nil, nil, fmt.Errorf("initialize default tokenizer: %w", fallbackError)
	}
	fallbackWarning := types.Warning{
		Kind:   types.WarningKindTokenizer,
		Detail: fmt.Sprintf(fallbackWarningDetailFormat, requestedName, DefaultEncodingName),
	}
	return tiktokenCounter{encoding: fallbackEncoding, name: DefaultEncodingName}, []types.Warning{fallbackWarning}, nil
}
