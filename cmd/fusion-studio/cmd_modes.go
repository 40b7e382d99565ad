package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/i18n"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List generation modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, _ := cmd.Flags().GetString("locale")
		return printModes(cmd.OutOrStdout(), i18n.New(locale))
	},
}

func printModes(w io.Writer, loc *i18n.Localizer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tLABEL\tMAX IMAGES\tPROMPT")
	for _, m := range domain.Modes() {
		prompt := "required"
		if m.UsesFixedPrompt() {
			prompt = "fixed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", m, loc.ModeLabel(m), m.MaxImages(), prompt)
	}
	return tw.Flush()
}
