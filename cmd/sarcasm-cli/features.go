package main

import (
	"strconv"
	"strings"

	"sarcasm/internal/core/features"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newFeaturesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "features [text...]",
		Short: "Show normalized text and the six heuristic features",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := f.service(cmd)
			if err != nil {
				return err
			}
			in, err := texts(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			table := tablewriter.NewWriter(out)
			table.SetHeader(append([]string{"Normalized"}, append(features.Names(), "Cues")...))
			table.SetAutoWrapText(false)
			table.SetBorder(false)

			for _, text := range in {
				rep, err := svc.Features(cmd.Context(), text)
				if err != nil {
					return err
				}
				if f.asJSON {
					if err := writeJSONLine(out, rep); err != nil {
						return err
					}
					continue
				}
				cells := lo.Map(rep.Vector, func(v int, _ int) string { return strconv.Itoa(v) })
				table.Append(append(append([]string{rep.Normalized}, cells...), strings.Join(rep.Cues, ",")))
			}
			if !f.asJSON {
				table.Render()
			}
			return nil
		},
	}
}
