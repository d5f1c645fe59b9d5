package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"careergenie-backend/internal/bootstrap"
	"careergenie-backend/internal/extract"
	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/shared/config"
	"careergenie-backend/internal/shared/telemetry"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract one resume and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseUseLLM   bool
	parseStrict   bool
	parseProvider string
	parseModel    string
	parseOut      string
	parseRawText  bool
	parseTimeout  time.Duration
)

func init() {
	parseCmd.Flags().BoolVar(&parseUseLLM, "llm", false, "Try the configured LLM before the heuristic parser")
	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "Fail instead of falling back when the LLM call fails")
	parseCmd.Flags().StringVar(&parseProvider, "provider", "", "LLM provider (vertex, gemini); defaults to LLM_PROVIDER")
	parseCmd.Flags().StringVar(&parseModel, "model", "", "LLM model; defaults to LLM_MODEL")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write JSON to this path instead of stdout")
	parseCmd.Flags().BoolVar(&parseRawText, "raw-text", false, "Keep rawText in the output")
	parseCmd.Flags().DurationVar(&parseTimeout, "timeout", 90*time.Second, "Overall timeout")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !extract.Supported(filepath.Base(path), "") {
		return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := config.Load()
	telemetry.Init("resumeparse", true)
	cfg.RequireRealAI = parseStrict
	cfg.AllowAIFallbacks = !parseStrict
	if parseProvider != "" {
		cfg.LLMProvider = parseProvider
	}
	if parseModel != "" {
		cfg.LLMModel = parseModel
	}
	if !parseUseLLM && !parseStrict {
		cfg.LLMProvider = "none"
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), parseTimeout)
	defer cancel()

	var gen llm.Generator = llm.Disabled{}
	if cfg.LLMProvider != "none" {
		gen, err = bootstrap.NewGenerator(ctx, cfg)
		if err != nil {
			return err
		}
	}

	out, err := bootstrap.NewPipeline(cfg, gen, nil).Run(ctx, data, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if !parseRawText {
		out.RawText = ""
	}

	var w io.Writer = cmd.OutOrStdout()
	if parseOut != "" {
		f, err := os.Create(parseOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
