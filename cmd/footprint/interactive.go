package main

import (
	"github.com/spf13/cobra"

	"github.com/ja7ad/genai-footprint/pkg/interactive"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"demo"},
		Short:   "Estimate the footprint of a single prompt",
		Long: `Ask for a prompt and the size of the document context the model reads,
then print the simulated token volume, energy and carbon of one chatbot
request.

After each estimate you are asked whether to run another. Only "y" continues,
matched case-insensitively so "Y" also continues; any other answer, a blank
line or end of input ends the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.cfg.InteractiveParams()
			d := interactive.Defaults{
				Prompt:            a.cfg.Interactive.DefaultPrompt,
				TopicSizeChars:    p.TopicSizeChars,
				ContextTopicCount: p.ContextTopicCount,
				OutputSizeChars:   p.OutputSizeChars,
			}
			s := interactive.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), a.eng, d,
				a.log.With().Str("mode", "interactive").Logger())
			return s.Run(cmd.Context())
		},
	}
}
