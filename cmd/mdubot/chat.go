package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/henfal/mdubot"
)

// Run executes the chat command: a read-ask-print loop that ends on "exit"
// or end of input.
func (c *ChatCmd) Run(deps *Dependencies) error {
	prompt := color.New(color.FgCyan, color.Bold)
	botName := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(deps.Stdout, "Ask about MDU courses and programs. Type \"exit\" to quit.")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		prompt.Fprint(deps.Stdout, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" {
			return nil
		}

		answer, err := deps.Asker.Ask(deps.Ctx, question)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mdubot.ErrorMessage(err))
			continue
		}

		botName.Fprint(deps.Stdout, "\nMDUBot: ")
		fmt.Fprintf(deps.Stdout, "%s\n\n", answer)
	}
}
