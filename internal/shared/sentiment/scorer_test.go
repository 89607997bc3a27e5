package sentiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio_backend/internal/shared/sentiment"
)

// TestScore_ShortInput は10文字未満の入力が常に0を返すことを検証します。
func TestScore_ShortInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "         "},
		{name: "nine characters", text: "great!!!!"},
		{name: "short positive word", text: "good"},
		{name: "padded short text", text: "   bad   "},
		{name: "nine runes with multibyte characters", text: "great één"},
		{name: "japanese short text", text: "決算は好調!"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, 0.0, sentiment.Score(tt.text))
		})
	}
}

// TestScore_Polarity はスコアの符号と値域を検証します。
func TestScore_Polarity(t *testing.T) {
	t.Parallel()

	positive := sentiment.Score("The company reported excellent earnings and the outlook is wonderful")
	negative := sentiment.Score("The company reported terrible losses and the outlook is a disaster")

	assert.Greater(t, positive, 0.0)
	assert.Less(t, negative, 0.0)
	assert.LessOrEqual(t, positive, 1.0)
	assert.GreaterOrEqual(t, negative, -1.0)
}

// TestScore_Deterministic は同一入力に対してスコアが決定的であることを検証します。
func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	const text = "Analysts remain bullish on the stock despite market volatility"
	first := sentiment.Score(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sentiment.Score(text))
	}
}

// TestLabel_Boundaries は±0.15の境界が両側とも内包されることを検証します。
func TestLabel_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score    float64
		expected string
	}{
		{score: 0.15, expected: sentiment.LabelPositive},
		{score: 0.1499, expected: sentiment.LabelNeutral},
		{score: -0.15, expected: sentiment.LabelNegative},
		{score: -0.149, expected: sentiment.LabelNeutral},
		{score: 0, expected: sentiment.LabelNeutral},
		{score: 1, expected: sentiment.LabelPositive},
		{score: -1, expected: sentiment.LabelNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sentiment.Label(tt.score), "score=%v", tt.score)
	}
}

// TestItemImpactLabel は単一ニュースのインパクトラベルの閾値を検証します。
func TestItemImpactLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score    float64
		expected string
	}{
		{score: 0, expected: sentiment.ImpactSmall},
		{score: 0.19, expected: sentiment.ImpactSmall},
		{score: -0.19, expected: sentiment.ImpactSmall},
		{score: 0.2, expected: sentiment.ImpactMedium},
		{score: -0.49, expected: sentiment.ImpactMedium},
		{score: 0.5, expected: sentiment.ImpactLarge},
		{score: -1, expected: sentiment.ImpactLarge},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sentiment.ItemImpactLabel(tt.score), "score=%v", tt.score)
	}
}
