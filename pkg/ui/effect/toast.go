package effect

import (
	"image/color"
	"strings"
	"time"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/theme"
)

// ToastLevel indicates the severity of a toast notification.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastWarning ToastLevel = "warning"
	ToastError   ToastLevel = "error"
)

const (
	DefaultToastDuration = 4 * time.Second
	DefaultMaxToasts     = 3
	// ToastSeq draws toasts above ordinary effects.
	ToastSeq = 100
)

// Toast is a short message box shown for a fixed time.
type Toast struct {
	Base
	Level    ToastLevel
	Title    string
	Message  string
	Duration time.Duration

	bg, fg, accent color.RGBA
}

// Draw paints the box until the duration has elapsed.
func (t *Toast) Draw(s *surface.Surface, now time.Duration) bool {
	if t.Elapsed(now) >= t.Duration {
		return false
	}
	r := t.Area
	s.Fill(r, t.bg)
	s.Fill(geom.NewRect(r.X, r.Y, 2, r.Height), t.accent)
	x := r.X + 5
	y := r.Y + 2
	if t.Title != "" {
		s.DrawText(x, y, t.Title, t.accent)
		y += surface.LineHeight
	}
	s.DrawText(x, y, t.Message, t.fg)
	return true
}

// Toaster stacks toasts in the bottom-right corner of a display area,
// dropping the oldest beyond its limit.
type Toaster struct {
	list     *List
	theme    *theme.Theme
	bounds   geom.Rect
	maxCount int
	toasts   []*Toast
	onChange func([]*Toast)
}

// NewToaster creates a toaster adding its effects to list.
func NewToaster(list *List, th *theme.Theme, bounds geom.Rect) *Toaster {
	if th == nil {
		th = theme.DefaultTheme()
	}
	return &Toaster{
		list:     list,
		theme:    th,
		bounds:   bounds,
		maxCount: DefaultMaxToasts,
	}
}

// SetBounds changes the area toasts are stacked in.
func (tm *Toaster) SetBounds(r geom.Rect) { tm.bounds = r }

// SetMaxCount limits the number of visible toasts.
func (tm *Toaster) SetMaxCount(n int) {
	if n > 0 {
		tm.maxCount = n
	}
}

// SetOnChange configures the callback for toast updates.
func (tm *Toaster) SetOnChange(fn func([]*Toast)) {
	tm.onChange = fn
	if fn != nil {
		fn(tm.Active())
	}
}

// Show creates a new toast and returns its ID.
func (tm *Toaster) Show(level ToastLevel, title, message string, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	tm.prune()
	for len(tm.toasts) >= tm.maxCount {
		oldest := tm.toasts[0]
		tm.toasts = tm.toasts[1:]
		tm.list.Remove(oldest.ID)
	}

	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	lines := 1
	if title != "" {
		lines = 2
	}
	width := min(tm.bounds.Width, max(surface.TextWidth(title), surface.TextWidth(message))+10)
	height := lines*surface.LineHeight + 4
	y := tm.bounds.Bottom() - (len(tm.toasts)+1)*(height+2)
	area := geom.NewRect(tm.bounds.Right()-width-2, y, width, height)

	t := &Toast{
		Base:     NewBase(KindToast, ToastSeq, area, tm.list.Clock().Now()),
		Level:    level,
		Title:    title,
		Message:  message,
		Duration: duration,
		bg:       tm.theme.SurfaceRaised,
		fg:       tm.theme.TextPrimary,
		accent:   tm.levelColor(level),
	}
	tm.toasts = append(tm.toasts, t)
	tm.list.AddEffect(t)
	tm.notify()
	return t.ID
}

// Info shows an informational toast.
func (tm *Toaster) Info(title, msg string) string {
	return tm.Show(ToastInfo, title, msg, DefaultToastDuration)
}

// Success shows a success toast.
func (tm *Toaster) Success(title, msg string) string {
	return tm.Show(ToastSuccess, title, msg, DefaultToastDuration)
}

// Warning shows a warning toast.
func (tm *Toaster) Warning(title, msg string) string {
	return tm.Show(ToastWarning, title, msg, DefaultToastDuration)
}

// Error shows an error toast.
func (tm *Toaster) Error(title, msg string) string {
	return tm.Show(ToastError, title, msg, DefaultToastDuration)
}

// Dismiss removes a toast by ID.
func (tm *Toaster) Dismiss(id string) {
	if strings.TrimSpace(id) == "" {
		return
	}
	remaining := tm.toasts[:0]
	found := false
	for _, t := range tm.toasts {
		if t.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, t)
	}
	tm.toasts = remaining
	if found {
		tm.list.Remove(id)
		tm.notify()
	}
}

// Active returns the toasts still scheduled.
func (tm *Toaster) Active() []*Toast {
	tm.prune()
	if len(tm.toasts) == 0 {
		return nil
	}
	out := make([]*Toast, len(tm.toasts))
	copy(out, tm.toasts)
	return out
}

// prune forgets toasts the list already dropped.
func (tm *Toaster) prune() {
	live := make(map[string]bool, tm.list.Len())
	for _, e := range tm.list.Effects() {
		live[e.Meta().ID] = true
	}
	remaining := tm.toasts[:0]
	for _, t := range tm.toasts {
		if live[t.ID] {
			remaining = append(remaining, t)
		}
	}
	tm.toasts = remaining
}

func (tm *Toaster) notify() {
	if tm.onChange != nil {
		tm.onChange(tm.Active())
	}
}

func (tm *Toaster) levelColor(level ToastLevel) color.RGBA {
	switch level {
	case ToastSuccess:
		return tm.theme.Success
	case ToastWarning:
		return tm.theme.Warning
	case ToastError:
		return tm.theme.Error
	default:
		return tm.theme.Info
	}
}
