package main

import (
	"fmt"
	"strconv"

	"sarcasm/internal/platform/logger"
	pnet "sarcasm/internal/platform/net"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPredictCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [text...]",
		Short: "Classify texts as sarcastic or not",
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
			table.SetHeader([]string{"Text", "Result", "Confidence"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)

			for _, text := range in {
				id := uuid.NewString()
				ctx := logger.WithRequest(pnet.WithRequest(cmd.Context(), id), id)
				p, err := svc.Predict(ctx, text)
				if f.asJSON {
					row := map[string]any{"text": text, "result": p.Result, "confidence": p.Confidence}
					if err != nil {
						row = map[string]any{"text": text, "error": err.Error()}
					}
					if err := writeJSONLine(out, row); err != nil {
						return err
					}
					continue
				}
				if err != nil {
					table.Append([]string{text, "error: " + err.Error(), ""})
					continue
				}
				table.Append([]string{text, p.Result, strconv.FormatFloat(p.Confidence, 'f', 2, 64)})
			}
			if !f.asJSON {
				table.Render()
			}
			if len(in) == 0 {
				return fmt.Errorf("no text given")
			}
			return nil
		},
	}
}
