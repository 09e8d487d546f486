package usecase

import (
	"strings"
	"time"

	"github.com/guregu/null/v6"

	"stock_chart/internal/feature/pricechart/domain"
	"stock_chart/internal/feature/pricechart/domain/entity"
)

// DateLayout は入力日付と提供元データの日付形式（YYYY-MM-DD）です。
const DateLayout = "2006-01-02"

// unsetSentinel はフォームから「未指定」として送られてくる値です。
const unsetSentinel = "None"

// IsValidDate は s が空でなく、YYYY-MM-DD として厳密に解釈できる場合に true を返します。
func IsValidDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// isAbsentDate は入力が「未指定」かどうかを判定します。
// 空文字・空白のみ・"None" は不正ではなく未指定として扱います。
func isAbsentDate(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, unsetSentinel)
}

// ParseDateRange はユーザー入力の開始日・終了日を DateRange に変換します。
// 未指定の境界は無効な null.Time のまま返し、既定値の補完は Select が一度だけ行います。
// 指定された境界のいずれかが不正な場合は、部分的な範囲を返さず
// 不正な値をすべて含む ValidationError を 1 つ返します。
func ParseDateRange(start, end string) (entity.DateRange, error) {
	var (
		r   entity.DateRange
		bad []string
	)
	parse := func(raw string) null.Time {
		if isAbsentDate(raw) {
			return null.Time{}
		}
		s := strings.TrimSpace(raw)
		if !IsValidDate(s) {
			bad = append(bad, raw)
			return null.Time{}
		}
		t, _ := time.Parse(DateLayout, s)
		return null.TimeFrom(t)
	}

	r.Start = parse(start)
	r.End = parse(end)
	if len(bad) > 0 {
		return entity.DateRange{}, &domain.ValidationError{
			Field:   "date",
			Values:  bad,
			Message: "expected YYYY-MM-DD",
		}
	}
	return r, nil
}
