// Package common содержит общее состояние и вывод подкоманд healthctl.
package common

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"healthsync/internal/app/client"
)

type clientKey struct{}

// JSONOutput выставляется глобальным флагом --json
var JSONOutput bool

var ErrNotInitialized = errors.New("клиент не инициализирован")

func WithClient(ctx context.Context, c *client.Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

func ClientFrom(ctx context.Context) (*client.Client, error) {
	c, ok := ctx.Value(clientKey{}).(*client.Client)
	if !ok || c == nil {
		return nil, ErrNotInitialized
	}
	return c, nil
}

// PrintJSON печатает v с отступами
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Status раскрашивает статус, если stdout это терминал
func Status(status string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return status
	}
	if c := colorFor(status); c != nil {
		return c.Sprint(status)
	}
	return status
}

func colorFor(status string) *color.Color {
	switch status {
	case "completed", "success", "healthy":
		return color.New(color.FgGreen, color.Bold)
	case "failed":
		return color.New(color.FgRed, color.Bold)
	case "pending", "sent":
		return color.New(color.FgYellow)
	}
	return nil
}
