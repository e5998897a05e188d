package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"zetatrack/internal/modules/export/domain"
)

var toastStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#1a1a1a")).
	Background(lipgloss.Color("#00ff88")).
	Padding(0, 1)

// ConsoleToaster prints each toast as a highlighted line.
type ConsoleToaster struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsoleToaster(out io.Writer) *ConsoleToaster {
	return &ConsoleToaster{out: out}
}

func (c *ConsoleToaster) Show(_ context.Context, toast domain.Toast) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.out, toastStyle.Render(toast.Message)); err != nil {
		return fmt.Errorf("print toast: %w", err)
	}
	return nil
}
