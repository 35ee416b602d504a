package main

import (
	"fmt"
	"strconv"
	"strings"

	"sarcasm/internal/core/version"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newInspectCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Describe the loaded artifacts and the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := f.service(cmd)
			if err != nil {
				return err
			}
			d := svc.Model()
			p := svc.Profile()
			out := cmd.OutOrStdout()

			if f.asJSON {
				return writeJSONLine(out, map[string]any{"model": d, "profile": p, "build": version.Info()})
			}

			fmt.Fprintf(out, "%s\n\n", version.Info())
			kv := tablewriter.NewWriter(out)
			kv.SetBorder(false)
			kv.SetAutoWrapText(false)
			kv.AppendBulk([][]string{
				{"variant", string(p.Variant)},
				{"label policy", string(p.Policy)},
				{"threshold", strconv.FormatFloat(p.Threshold, 'f', -1, 64)},
				{"vectorizer", fmt.Sprintf("%s (%d terms)", d.Vectorizer.Kind, d.Vectorizer.Dim)},
				{"classifier", fmt.Sprintf("%s (%d features)", d.Classifier.Kind, d.Classifier.Features)},
				{"probabilistic", strconv.FormatBool(d.Classifier.Probabilistic)},
				{"classes", strings.Join(lo.Map(d.Classifier.Classes, func(c int, _ int) string { return strconv.Itoa(c) }), ",")},
				{"labels", strings.Join(d.Labels, ",")},
				{"extra features", strconv.Itoa(d.ExtraFeatures)},
			})
			kv.Render()

			fmt.Fprintln(out)
			files := tablewriter.NewWriter(out)
			files.SetHeader([]string{"Role", "Path", "Format", "Bytes", "SHA256"})
			files.SetAutoWrapText(false)
			files.SetBorder(false)
			for _, file := range d.Files {
				files.Append([]string{file.Role, file.Path, file.Format, strconv.FormatInt(file.Bytes, 10), lo.Substring(file.SHA256, 0, 12)})
			}
			files.Render()
			return nil
		},
	}
}
