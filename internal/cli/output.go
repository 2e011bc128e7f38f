package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"hq-timers/internal/domain"
	"hq-timers/internal/services"
)

var (
	successColor  = color.New(color.FgGreen)
	warnColor     = color.New(color.FgYellow)
	idColor       = color.New(color.FgCyan)
	pomodoroColor = color.New(color.FgHiMagenta)
	headerColor   = color.New(color.Bold)
)

func entryID(id int64) string {
	return idColor.Sprintf("#%d", id)
}

func entryKind(e *domain.TimerEntry) string {
	if e.IsPomodoro {
		return pomodoroColor.Sprint(e.Kind())
	}
	return e.Kind()
}

// describeEntry renders the labels of e, for instance "writing @work"
func describeEntry(e *domain.TimerEntry) string {
	parts := []string{e.ActivityLabel()}
	if e.Area != nil {
		parts = append(parts, "@"+*e.Area)
	}
	return strings.Join(parts, " ")
}

func (a *App) printEntryLine(w io.Writer, e *domain.TimerEntry) {
	fmt.Fprintf(w, "  %s  %s  %-8s  %s  %s\n",
		entryID(e.ID),
		a.formatTime(e.StartTime),
		services.FormatSeconds(e.Duration),
		entryKind(e),
		describeEntry(e))
}

func (a *App) printEntries(entries []*domain.TimerEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No completed timers yet")
		return
	}
	for _, e := range entries {
		a.printEntryLine(a.out, e)
	}
}

func (a *App) printEntriesByDate(byDate map[string][]*domain.TimerEntry) {
	if len(byDate) == 0 {
		fmt.Fprintln(a.out, "No completed timers yet")
		return
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, date := range dates {
		headerColor.Fprintln(a.out, date)
		for _, e := range byDate[date] {
			a.printEntryLine(a.out, e)
		}
	}
}

func (a *App) printStatistic(stat *domain.TimerStatistic) {
	fmt.Fprintf(a.out, "%s  started %d  finished %s  cancelled %s\n",
		stat.DateString,
		stat.TimersStarted,
		successColor.Sprint(stat.TimersFinished),
		warnColor.Sprint(stat.TimersCancelled))
}
