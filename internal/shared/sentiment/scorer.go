// Package sentiment scores text polarity and derives categorical labels.
package sentiment

import (
	"strings"
	"unicode/utf8"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Sentiment labels derived from a scalar score.
const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
	LabelNeutral  = "Neutral"
)

// Impact labels for how much a signal should matter.
const (
	ImpactSmall  = "Small"
	ImpactMedium = "Medium"
	ImpactLarge  = "Large"
)

// minScorableLength はスコアリング対象となるテキストの最低文字数です。
// これより短い入力は意味のある極性を持たないため、常に中立(0)を返します。
const minScorableLength = 10

// Score はテキストの感情極性を[-1, 1]のスカラーで返します。
// 副作用も失敗モードもない純粋関数です。
func Score(text string) float64 {
	// バイト数ではなく文字数で判定する（マルチバイト入力対策）
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minScorableLength {
		return 0
	}
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	s := sentitext.PolarityScore(parsed).Compound
	// レキシコンの丸め誤差に対する防御
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return s
}

// Label はスコアを3値ラベルに変換します。境界は両側とも±0.15を含みます。
func Label(score float64) string {
	switch {
	case score >= 0.15:
		return LabelPositive
	case score <= -0.15:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// ItemImpactLabel は単一ニュース項目のインパクトラベルをスコアの絶対値から
// 決定的に導出します。価格やポジションの文脈が揃っている場合は、
// 集計側の決定的なインパクト計算が優先されます。
func ItemImpactLabel(score float64) string {
	impact := score
	if impact < 0 {
		impact = -impact
	}
	switch {
	case impact < 0.2:
		return ImpactSmall
	case impact < 0.5:
		return ImpactMedium
	default:
		return ImpactLarge
	}
}
