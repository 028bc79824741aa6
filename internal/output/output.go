package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level classifies an outcome for coloring.
type Level int

// Outcome levels.
const (
	LevelInfo Level = iota
	LevelOK
	LevelWarn
	LevelFail
)

// Printer writes command output in human or JSON form.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Border  lipgloss.Color
}

func newStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Success: plain, Warning: plain, Bold: plain,
			Title: plain, Muted: plain, Key: plain, Border: lipgloss.Color(""),
		}
	}
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),           // green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // yellow
		Bold:    lipgloss.NewStyle().Bold(true),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")), // blue
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // cyan
		Border:  lipgloss.Color("8"),
	}
}

// NewPrinter creates a Printer writing to w. Styles are applied only when
// isTTY is true; pass the result of ResolveColorMode to honor --color.
func NewPrinter(w io.Writer, jsonMode bool, isTTY bool) *Printer {
	return &Printer{
		w:      w,
		errW:   w,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: newStyles(isTTY),
	}
}

// WithStderr sets a separate writer for human-mode errors and warnings.
// JSON mode keeps everything on the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY reports whether styled output is enabled.
func (p *Printer) IsTTY() bool {
	return p.isTTY
}

// Success writes a result. Human mode prints data["message"] when present,
// otherwise each key and value.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.writeJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(msg)))
		return nil
	}
	for key, val := range data {
		mustWrite(fmt.Fprintf(p.w, "%s: %v\n", p.styles.Bold.Render(key), val))
	}
	return nil
}

// Error writes err. Errors without an exit code are reported as user errors.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Message))
}

// Warn writes a warning: {"warning": "..."} in JSON mode, a styled line on
// the stderr writer otherwise.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.writeJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Stderr writes a hint to the stderr writer. No-op in JSON mode.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, format, args...))
}

// Print formats to the output without adding a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON encodes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	return p.writeJSON(data)
}

func (p *Printer) writeJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"error": message, "code": code}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{"error": message, "code": code})
	return result
}

// mustWrite panics on write failures to stdout, stderr or buffers, which
// leave no way to report anything.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Status styles a short outcome word by level.
func (p *Printer) Status(text string, level Level) string {
	switch level {
	case LevelOK:
		return p.styles.Success.Render(text)
	case LevelWarn:
		return p.styles.Warning.Render(text)
	case LevelFail:
		return p.styles.Error.Render(text)
	default:
		return p.styles.Muted.Render(text)
	}
}

// Table writes rows under bold headers with space-padded columns. Widths
// are measured on the unstyled cell text, so cells must not contain styles.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := columnWidths(headers, rows)

	for i, h := range headers {
		if i > 0 {
			mustWrite(fmt.Fprint(p.w, "  "))
		}
		mustWrite(fmt.Fprint(p.w, p.styles.Bold.Render(padRight(h, widths[i]))))
	}
	mustWrite(fmt.Fprintln(p.w))

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				mustWrite(fmt.Fprint(p.w, "  "))
			}
			mustWrite(fmt.Fprint(p.w, padRight(cell, widths[i])))
		}
		mustWrite(fmt.Fprintln(p.w))
	}
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// Box writes content in a rounded border on a terminal, plain otherwise.
func (p *Printer) Box(title string, content string) {
	if !p.isTTY {
		if title != "" {
			mustWrite(fmt.Fprintf(p.w, "%s\n\n", title))
		}
		mustWrite(fmt.Fprintln(p.w, content))
		return
	}

	if title != "" {
		content = p.styles.Title.Render(title) + "\n\n" + content
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.Border).
		Padding(0, 1)
	mustWrite(fmt.Fprintln(p.w, style.Render(content)))
}

// Section writes a blank line, then title over a rule of the same width.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.Title.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.Muted.Render(strings.Repeat("─", len(title)))))
}

// KeyValue writes "key: value".
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
