package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sarcasm/internal/core/features"
	"sarcasm/internal/platform/config"
	"sarcasm/internal/services/classify/domain"
	classifymod "sarcasm/internal/services/classify/module"
	"sarcasm/internal/services/classify/service"

	"github.com/spf13/cobra"
)

// flags shared by every subcommand; empty values fall back to CORE_* env
type flags struct {
	variant    string
	policy     string
	vectorizer string
	classifier string
	encoder    string
	asJSON     bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "sarcasm-cli",
		Short:        "Sarcasm classifier on the command line",
		Long:         "Runs the sarcasm pipeline against local model artifacts. Texts come from args or stdin, one per line.",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.variant, "variant", "", "pipeline variant: heuristic or plain (overrides CORE_CLASSIFY_VARIANT)")
	pf.StringVar(&f.policy, "policy", "", "label policy: threshold or discrete (overrides CORE_CLASSIFY_LABEL_POLICY)")
	pf.StringVar(&f.vectorizer, "vectorizer", "", "vectorizer artifact path (overrides CORE_MODEL_VECTORIZER_PATH)")
	pf.StringVar(&f.classifier, "classifier", "", "classifier artifact path (overrides CORE_MODEL_CLASSIFIER_PATH)")
	pf.StringVar(&f.encoder, "encoder", "", "label encoder artifact path (overrides CORE_MODEL_ENCODER_PATH)")
	pf.BoolVar(&f.asJSON, "json", false, "print JSON lines instead of a table")

	root.AddCommand(newPredictCmd(f), newFeaturesCmd(f), newInspectCmd(f))
	return root
}

// options resolves the pipeline settings from env and flags
func (f *flags) options() (classifymod.Options, error) {
	o := classifymod.FromConfig(config.New().Prefix("CORE_"))
	if f.variant != "" {
		v := domain.Variant(strings.ToLower(f.variant))
		if v != domain.VariantHeuristic && v != domain.VariantPlain {
			return o, fmt.Errorf("unknown variant %q", f.variant)
		}
		p := domain.DefaultProfile(v)
		p.Threshold, p.Decorate, p.SarcasticLabel = o.Profile.Threshold, o.Profile.Decorate, o.Profile.SarcasticLabel
		o.Profile = p
	}
	if f.policy != "" {
		o.Profile.Policy = domain.LabelPolicy(strings.ToLower(f.policy))
	}
	return o, o.Profile.Validate()
}

// service loads the artifacts and builds the orchestrator
func (f *flags) service(cmd *cobra.Command) (*service.Svc, error) {
	o, err := f.options()
	if err != nil {
		return nil, err
	}
	paths := classifymod.ModelPaths(config.New().Prefix("CORE_"))
	if f.vectorizer != "" {
		paths.Vectorizer = f.vectorizer
	}
	if f.classifier != "" {
		paths.Classifier = f.classifier
	}
	if f.encoder != "" {
		paths.Encoder = f.encoder
	}
	b, err := classifymod.LoadModel(cmd.Context(), paths, o.Profile)
	if err != nil {
		return nil, err
	}
	ext, err := features.Default()
	if err != nil {
		return nil, err
	}
	return service.New(b, ext, o.Profile)
}

// texts returns args when given, otherwise the non empty lines of in
func texts(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var out []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

func writeJSONLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
