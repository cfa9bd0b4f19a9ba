package notifier

import (
	"fmt"
	"html"
	"strings"

	"FearGreed/internal/calculator"
	"FearGreed/internal/model"
)

var statusEmoji = map[model.Status]string{
	model.StatusExtremeFear:  "😱",
	model.StatusFear:         "😟",
	model.StatusNeutral:      "😐",
	model.StatusGreed:        "🙂",
	model.StatusExtremeGreed: "🤑",
}

// FormatLatest formats the most recent point, with the change from the day before when known.
func FormatLatest(history []model.HistoryPoint) string {
	if len(history) == 0 {
		return "❌ 지수 데이터가 없습니다"
	}
	latest := history[len(history)-1]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Fear &amp; Greed Index</b> | %s\n\n", html.EscapeString(latest.Date)))
	b.WriteString(fmt.Sprintf("%s <b>%.0f</b> (%s)\n", statusEmoji[latest.Status], latest.Value, html.EscapeString(string(latest.Status))))
	if len(history) > 1 {
		prev := history[len(history)-2]
		b.WriteString(fmt.Sprintf("전일 대비: %+.1f (%s)\n", latest.Value-prev.Value, html.EscapeString(string(prev.Status))))
	}
	return b.String()
}

// FormatHistory formats the given points as one line per day, oldest first,
// followed by the window's average, range and where the latest score sits in it.
func FormatHistory(history []model.HistoryPoint) string {
	if len(history) == 0 {
		return "❌ 지수 데이터가 없습니다"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>최근 %d일</b>\n\n", len(history)))
	for _, p := range history {
		b.WriteString(fmt.Sprintf("%s  %3.0f  %s\n", p.Date, p.Value, html.EscapeString(string(p.Status))))
	}

	avg, err := calculator.Average(history, len(history))
	if err != nil {
		return b.String()
	}
	high, low, err := calculator.Range(history, len(history))
	if err != nil {
		return b.String()
	}
	pos, err := calculator.Position(history[len(history)-1].Value, high, low)
	if err != nil {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("\n평균 %.1f | 최고 %.0f | 최저 %.0f\n", avg, high, low))
	b.WriteString(fmt.Sprintf("구간 내 위치: %.0f%%\n", pos*100))
	return b.String()
}
