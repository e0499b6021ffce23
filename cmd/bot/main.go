// Package main runs the reading tracker as a console chat. Plain lines
// are messages; lines starting with "!" press a button from the last
// prompt, for example "!confirm_book_details".
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/bot"
	"github.com/myscribe/myscribe-server/internal/di"
	"github.com/myscribe/myscribe-server/internal/logger"
)

const consoleUser = "console"

// consoleSender prints outgoing messages to stdout.
type consoleSender struct{}

func (consoleSender) Send(_ context.Context, _ string, msg bot.Outgoing) error {
	fmt.Println()
	fmt.Println(msg.Text)
	if msg.PhotoURL != "" {
		fmt.Printf("(cover: %s)\n", msg.PhotoURL)
	}
	for _, action := range msg.Actions {
		fmt.Printf("  [%s] -> !%s\n", action.Label, action.Data)
	}
	fmt.Print("\n> ")
	return nil
}

func main() {
	injector := di.NewContainer()

	do.ProvideValue[bot.Sender](injector, consoleSender{})

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	router := do.MustInvoke[*bot.Router](injector)

	ctx := context.Background()
	displayName := os.Getenv("USER")

	fmt.Print("MyScribe reading tracker. Say hi, or /start for an overview. Ctrl-D quits.\n\n> ")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}

		in := &bot.Incoming{UserID: consoleUser, DisplayName: displayName}
		if data, ok := strings.CutPrefix(line, "!"); ok {
			in.CallbackData = data
		} else {
			in.Text = line
		}

		router.Dispatch(ctx, in)
		router.Wait()
	}

	log.Info("Shutting down")
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
}
