package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskpad/internal/markup"
)

var askPlain bool

var askCmd = &cobra.Command{
	Use:   "ask QUESTION...",
	Short: "Ask the assistant a question and print the formatted answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "print without terminal styling")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("question is empty")
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	answer := a.asker().Ask(cmd.Context(), question)
	doc := markup.Parse(answer)
	out := doc.Text()
	if !askPlain {
		out = markup.Terminal(doc, markup.DefaultStyles())
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
