package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"tinyurl/internal/models"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	DefaultCodeLength  = 6
	DefaultMaxAttempts = 10
	MinAliasLength     = 3
)

var charsetLen = big.NewInt(int64(len(charset)))

// GenerateShortCode generates a random string of fixed length
func GenerateShortCode(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}

// CodeGenerator draws codes until one passes the caller's uniqueness check.
type CodeGenerator struct {
	Length      int
	MaxAttempts int

	random func(int) (string, error)
}

func NewCodeGenerator(length, maxAttempts int) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CodeGenerator{
		Length:      length,
		MaxAttempts: maxAttempts,
		random:      GenerateShortCode,
	}
}

// Generate returns the first drawn code for which taken reports false. It gives
// up with models.ErrCodeSpaceExhausted after MaxAttempts draws.
func (g *CodeGenerator) Generate(taken func(code string) bool) (string, error) {
	for attempt := 0; attempt < g.MaxAttempts; attempt++ {
		code, err := g.random(g.Length)
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}
		if !taken(code) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: no free code after %d attempts", models.ErrCodeSpaceExhausted, g.MaxAttempts)
}

// ValidateAlias checks the shape of a custom alias. Uniqueness is the store's job.
func ValidateAlias(alias string) error {
	if utf8.RuneCountInString(strings.TrimSpace(alias)) < MinAliasLength {
		return fmt.Errorf("%w: custom alias must be at least %d characters", models.ErrValidation, MinAliasLength)
	}
	return nil
}

// NewRecordID returns a UUID used as a click record identity.
func NewRecordID() string {
	return uuid.NewString()
}
