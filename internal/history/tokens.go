package history

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	encoderOnce sync.Once
	encoder     tokenizer.Codec
	encoderErr  error
)

func codec() (tokenizer.Codec, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return encoder, encoderErr
}

// CountTokens estimates the prompt size of turns with the cl100k_base encoding.
func CountTokens(turns []Turn) (int, error) {
	enc, err := codec()
	if err != nil {
		return 0, err
	}
	var sum int
	for _, turn := range turns {
		ids, _, err := enc.Encode(turn.Content)
		if err != nil {
			return 0, err
		}
		sum += len(ids)
	}
	return sum, nil
}
