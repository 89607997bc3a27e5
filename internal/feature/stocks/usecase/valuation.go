package usecase

import (
	"math"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/shared/sentiment"
)

// 集計式の調整パラメータ。
const (
	newsWeight = 0.7 // ニュースセンチメントの重み
	gainWeight = 0.3 // 当日騰落率の重み

	// gainNormalizer で割った騰落率(%)を[-1, 1]へ正規化します。
	// ±5%の値動きで寄与が飽和します。
	gainNormalizer = 5.0

	// impactValueScale はインパクト計算におけるポジション評価額の基準です。
	impactValueScale = 10000.0

	impactLargeThreshold  = 1.0
	impactMediumThreshold = 0.3
)

// ValuationInput は1銘柄分の集計に必要な生の入力です。
type ValuationInput struct {
	// NewsSentiments は保存済みニュースのセンチメントスコア列です。
	NewsSentiments []float64
	// StoredPrice / StoredPreviousClose は銘柄レコードの保存値です。
	StoredPrice         float64
	StoredPreviousClose float64
	// Quote はライブクォートです。プロバイダ障害時はnilになります。
	Quote *entity.Quote
	// Quantity は保有数量です。保有レコードがない場合は0です。
	Quantity int64
}

// Aggregate は1銘柄のニュースセンチメント・ライブクォート・保有数量を
// 派生ビューへ集計します。
//
// 手順:
//  1. ニュースセンチメントの平均（ニュースが無ければセンチメント系は中立で確定）
//  2. 価格の解決: ライブクォート > 保存値 > 0
//  3. 当日損益・評価額の計算
//  4. ニュース0.7 + 正規化騰落率0.3 の合成センチメント
//  5. 合成センチメント×値動き×ポジション規模による決定的インパクト
//
// クォート取得の失敗はここには届きません。呼び出し側がnil Quoteとして
// 渡し、保存値で同じ式を評価します。
func Aggregate(in ValuationInput) entity.Valuation {
	price, prevClose := resolvePrices(in)

	v := entity.Valuation{
		Price:         price,
		PreviousClose: prevClose,
		Quantity:      in.Quantity,
	}

	if prevClose != 0 {
		v.DaysGainPercent = (price - prevClose) / prevClose * 100
	}
	v.DaysGain = (price - prevClose) * float64(in.Quantity)
	v.TotalValue = price * float64(in.Quantity)

	if len(in.NewsSentiments) == 0 {
		// ニュースが全く無い銘柄はセンチメント中立・インパクト小で確定
		v.SentimentLabel = sentiment.LabelNeutral
		v.ImpactLabel = sentiment.ImpactSmall
		return v
	}

	avg := 0.0
	for _, s := range in.NewsSentiments {
		avg += coerce(s)
	}
	avg /= float64(len(in.NewsSentiments))

	normalizedGain := clamp(v.DaysGainPercent/gainNormalizer, -1, 1)
	v.Sentiment = newsWeight*avg + gainWeight*normalizedGain
	v.SentimentLabel = sentiment.Label(v.Sentiment)

	impact := math.Abs(v.Sentiment) *
		(math.Abs(v.DaysGainPercent) / gainNormalizer) *
		(v.TotalValue / impactValueScale)
	switch {
	case impact > impactLargeThreshold:
		v.ImpactLabel = sentiment.ImpactLarge
	case impact > impactMediumThreshold:
		v.ImpactLabel = sentiment.ImpactMedium
	default:
		v.ImpactLabel = sentiment.ImpactSmall
	}

	return v
}

// resolvePrices はライブクォート優先で価格と前日終値を解決します。
// どちらの入力にも値が無い場合は0に落ちます。前日終値が得られない場合は
// 現値を基準にし、当日損益を0として扱います。
func resolvePrices(in ValuationInput) (price, prevClose float64) {
	price = coerce(in.StoredPrice)
	prevClose = coerce(in.StoredPreviousClose)
	if in.Quote != nil {
		if p := coerce(in.Quote.Price); p != 0 {
			price = p
		}
		if pc := coerce(in.Quote.PreviousClose); pc != 0 {
			prevClose = pc
		}
	}
	if prevClose == 0 {
		prevClose = price
	}
	return price, prevClose
}

// coerce は上流のスキーマずれで混入したNaN/Infを0に矯正します。
func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
