package model

import "github.com/pkoukk/tiktoken-go"

// CountTokens estimates the token footprint of text using the encoding
// shared by the embedding model family. Useful for cost logging only.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
