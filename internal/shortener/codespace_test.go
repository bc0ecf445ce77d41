package shortener

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name         string
		iterations   int
		expectUnique bool
	}{
		{
			name:         "single generation",
			iterations:   1,
			expectUnique: true,
		},
		{
			name:         "multiple generations should be unique",
			iterations:   1000,
			expectUnique: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var space CodeSpace
			generated := make(map[ShortCode]bool)

			for i := 0; i < tt.iterations; i++ {
				code := space.Generate()
				assert.Len(t, string(code), CodeLength)
				for _, char := range code {
					assert.Contains(t, Alphabet, string(char))
				}

				if tt.expectUnique {
					assert.False(t, generated[code], "Generated duplicate short code: %s", code)
					generated[code] = true
				}
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 62)
	assert.Equal(t, 7, CodeLength)

	seen := make(map[rune]bool)
	for _, char := range Alphabet {
		assert.False(t, seen[char], "duplicate symbol %q in alphabet", char)
		seen[char] = true
	}
}

func TestGenerateCoversAlphabet(t *testing.T) {
	// 62 symbols over 7000 draws; a uniform source leaves none unused.
	var space CodeSpace
	seen := make(map[rune]bool)
	for i := 0; i < 1000; i++ {
		for _, char := range space.Generate() {
			seen[char] = true
		}
	}
	assert.Len(t, seen, len(Alphabet))
}

func TestIsValidCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"valid mixed", "aZ09bY8", true},
		{"too short", "abc123", false},
		{"too long", "abcd1234", false},
		{"empty", "", false},
		{"dash", "abc-123", false},
		{"underscore", "abc_123", false},
		{"non ascii", "abcdé12", false},
		{"slash", "abc/123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCode(tt.code))
		})
	}
}

func TestGenerateProducesValidCodes(t *testing.T) {
	var space CodeSpace
	for i := 0; i < 500; i++ {
		code := space.Generate()
		assert.True(t, IsValidCode(string(code)), "invalid code %q", code)
		assert.False(t, strings.ContainsAny(string(code), "/?#%&= "))
	}
}

func TestGenerateConcurrency(t *testing.T) {
	const numGoroutines = 10
	const codesPerGoroutine = 100

	var space CodeSpace
	resultChan := make(chan ShortCode, numGoroutines*codesPerGoroutine)
	var wg sync.WaitGroup

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < codesPerGoroutine; j++ {
				resultChan <- space.Generate()
			}
		}()
	}
	wg.Wait()
	close(resultChan)

	codes := make(map[ShortCode]bool)
	for code := range resultChan {
		assert.False(t, codes[code], "Generated duplicate short code in concurrent test: %s", code)
		codes[code] = true
	}
	assert.Len(t, codes, numGoroutines*codesPerGoroutine)
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"https URL", "https://example.com/path?q=1", false},
		{"http URL with port", "http://localhost:8080", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"no scheme", "example.com", true},
		{"relative path", "/just/a/path", true},
		{"scheme only", "https://", true},
		{"garbage", "not-a-valid-url", true},
		{"bad escape", "http://exa mple.com/%zz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTarget)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	var space CodeSpace
	for i := 0; i < b.N; i++ {
		_ = space.Generate()
	}
}
