package in

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	analyticsdto "stillpoint/internal/modules/analytics/dto"
	analyticsin "stillpoint/internal/modules/analytics/port/in"
)

const barWidth = 30

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context, days, weeks int) (analyticsdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, days, weeks)
}

// Report writes the summary as plain text with numbers formatted for lang.
// An unknown language tag falls back to English.
func (h CLIHandler) Report(ctx context.Context, w io.Writer, lang string, days, weeks int) error {
	summary, err := h.usecase.Summary(ctx, days, weeks)
	if err != nil {
		return err
	}
	return Render(w, lang, summary)
}

func Render(w io.Writer, lang string, s analyticsdto.SummaryOutput) error {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	var b strings.Builder
	p.Fprintf(&b, "sessions        %d\n", s.SessionCount)
	p.Fprintf(&b, "total           %s\n", FormatDuration(s.TotalDuration))
	p.Fprintf(&b, "last 7 days     %s\n", FormatDuration(s.WeeklyDuration))
	p.Fprintf(&b, "last month      %s\n", FormatDuration(s.MonthlyDuration))
	p.Fprintf(&b, "average         %s\n", FormatDuration(s.AverageDuration))
	p.Fprintf(&b, "longest         %s\n", FormatDuration(s.LongestSession))
	p.Fprintf(&b, "streak          %d (best %d)\n", s.CurrentStreak, s.LongestStreak)

	writeSeries(&b, p, "daily minutes", s.Daily)
	writeSeries(&b, p, "weekly minutes", s.Weekly)

	_, err = io.WriteString(w, b.String())
	return err
}

func writeSeries(b *strings.Builder, p *message.Printer, title string, buckets []analyticsdto.BucketOutput) {
	if len(buckets) == 0 {
		return
	}
	peak := 0
	for _, bucket := range buckets {
		peak = max(peak, bucket.Minutes)
	}
	p.Fprintf(b, "\n%s\n", title)
	for _, bucket := range buckets {
		width := 0
		if peak > 0 {
			width = bucket.Minutes * barWidth / peak
		}
		p.Fprintf(b, "%-7s %s %d\n", bucket.Label, strings.Repeat("#", width), bucket.Minutes)
	}
}

// FormatDuration renders seconds as "1h 05m", "12m" or "45s".
func FormatDuration(seconds int) string {
	switch {
	case seconds >= 3600:
		return fmt.Sprintf("%dh %02dm", seconds/3600, (seconds%3600)/60)
	case seconds >= 60:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
