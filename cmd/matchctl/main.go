// Package main is a terminal front end for the match analyzer: it runs one
// upload session against the comparison service and prints the report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alfredoptarigan/jd-resume-matcher/internal/config"
	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

var (
	version = "1.0.0"
	appName = "matchctl"

	endpoint    string
	timeout     time.Duration
	jdPath      string
	resumePath  string
	jsonOutput  bool
	verboseMode bool

	colorRed   = color.New(color.FgRed, color.Bold)
	colorGreen = color.New(color.FgGreen, color.Bold)
	colorCyan  = color.New(color.FgCyan)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		colorRed.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Compare a job description with a resume",
	Long: `matchctl submits a job description and a resume to the comparison
service and prints the match report.

Examples:
  # Analyze a pair of documents
  matchctl analyze --jd job.pdf --resume resume.txt

  # Validate files without sending them
  matchctl check job.pdf resume.txt

  # Render a saved service response
  matchctl render response.json`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verboseMode {
			log.SetOutput(io.Discard)
		}
	},
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Upload both documents and print the match report",
	RunE:  runAnalyze,
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Validate files against the upload rules (PDF or TXT, max 10MB)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Print the report for a saved analysis response",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "show service logs")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")

	analyzeCmd.Flags().StringVar(&jdPath, "jd", "", "job description file (PDF or TXT)")
	analyzeCmd.Flags().StringVar(&resumePath, "resume", "", "resume file (PDF or TXT)")
	analyzeCmd.Flags().StringVar(&endpoint, "endpoint", "", "analysis endpoint (default from ANALYZER_URL)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout, 0 for none")
	_ = analyzeCmd.MarkFlagRequired("jd")
	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd, checkCmd, renderCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	target := cfg.Analyzer.URL
	if endpoint != "" {
		target = endpoint
	}
	requestTimeout := cfg.Analyzer.Timeout
	if cmd.Flags().Changed("timeout") {
		requestTimeout = timeout
	}

	loader := services.NewCandidateLoader()
	session := services.NewUploadSession(services.SessionDeps{
		Validator: services.NewFileValidator(),
		Inspector: services.NewPDFParserService(),
		Analyzer:  services.NewAnalyzerClient(target, requestTimeout),
	})

	paths := map[models.Slot]string{
		models.SlotJobDescription: jdPath,
		models.SlotResume:         resumePath,
	}
	for _, slot := range models.Slots {
		file, err := loader.FromPath(paths[slot])
		if err != nil {
			return fmt.Errorf("%s: %w", slot.Label(), err)
		}
		if err := session.SelectFile(slot, file); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !jsonOutput {
		colorCyan.Fprintln(cmd.ErrOrStderr(), "Analyzing files...")
	}
	if err := session.Submit(ctx); err != nil {
		return err
	}

	return printReport(cmd.OutOrStdout(), session.Snapshot().Result)
}

func runCheck(cmd *cobra.Command, args []string) error {
	loader := services.NewCandidateLoader()
	validator := services.NewFileValidator()
	pdfParser := services.NewPDFParserService()
	out := cmd.OutOrStdout()

	failed := 0
	for _, path := range args {
		file, err := loader.FromPath(path)
		if err == nil {
			err = validator.Validate("", file)
		}
		if err != nil {
			failed++
			colorRed.Fprintf(out, "✘ %s: %v\n", path, err)
			continue
		}

		mediaType := services.NormalizeMediaType(file.MediaType)
		detail := fmt.Sprintf("%s, %s", mediaType, formatSize(file.Size))
		if mediaType == models.MediaTypePDF {
			if pages, err := pdfParser.PageCount(file.Content); err == nil {
				detail += fmt.Sprintf(", %d pages", pages)
			}
		}
		colorGreen.Fprintf(out, "✔ %s", file.Name)
		fmt.Fprintf(out, " (%s)\n", detail)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files rejected", failed, len(args))
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read response file: %w", err)
	}

	payload, err := models.ParsePayload(body)
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), services.Normalize(payload))
}

func printReport(w io.Writer, view *models.ViewModel) error {
	if view == nil {
		return fmt.Errorf("no analysis result")
	}
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	renderReport(w, view)
	return nil
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	}
	return fmt.Sprintf("%d B", size)
}
