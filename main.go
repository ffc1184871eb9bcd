package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finlytics-dev/finlytics/internal/api"
	"github.com/finlytics-dev/finlytics/internal/config"
	"github.com/finlytics-dev/finlytics/internal/extractor"
	"github.com/finlytics-dev/finlytics/internal/models"
	"github.com/finlytics-dev/finlytics/internal/parser"
	"github.com/finlytics-dev/finlytics/internal/writer"
)

const version = "1.0.0"

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var layoutPath string

	rootCmd := &cobra.Command{
		Use:     "finlytics",
		Short:   "Bank statement parsing and categorization",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "", "Path to a statement layout YAML (defaults to built-in layout)")

	rootCmd.AddCommand(newServeCmd(&layoutPath, log))
	rootCmd.AddCommand(newConvertCmd(&layoutPath, log))
	rootCmd.AddCommand(newLayoutCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadLayout(path string) (*config.Layout, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// detectOCR probes for the OCR toolchain, returning a nil interface (not a
// typed nil) when it is absent so OCREnabled stays false.
func detectOCR(log zerolog.Logger) parser.OCRClient {
	if o := extractor.DetectOCR(log); o != nil {
		return o
	}
	return nil
}

func newServeCmd(layoutPath *string, log zerolog.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the statement upload HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(*layoutPath)
			if err != nil {
				return err
			}

			svc := parser.New(layout, detectOCR(log), log)

			app := fiber.New(fiber.Config{
				BodyLimit:             32 << 20,
				DisableStartupMessage: true,
			})
			api.NewHandler(svc, log).Register(app)

			log.Info().Str("addr", addr).Bool("ocr_enabled", svc.OCREnabled()).Msg("starting server")
			return app.Listen(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	return cmd
}

func newConvertCmd(layoutPath *string, log zerolog.Logger) *cobra.Command {
	var (
		outputPath string
		asJSON     bool
		header     bool
	)

	cmd := &cobra.Command{
		Use:   "convert <statement.csv|statement.pdf|statement.png> ...",
		Short: "Parse statement files and write normalized transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(*layoutPath)
			if err != nil {
				return err
			}

			svc := parser.New(layout, detectOCR(log), log)

			for _, inputPath := range args {
				if err := convertFile(svc, inputPath, outputPath, asJSON, header); err != nil {
					return fmt.Errorf("processing %s: %w", inputPath, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path (defaults to input filename with .out.csv extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the partitioned result as JSON to stdout instead of CSV")
	cmd.Flags().BoolVar(&header, "header", true, "Include a column header row in CSV output")
	return cmd
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Manage statement layout configs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init <layout.yaml>",
		Short: "Write the built-in statement layout to a YAML file for customization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeDefaultLayout(args[0]); err != nil {
				return err
			}
			fmt.Printf("Wrote default layout to %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func writeDefaultLayout(path string) error {
	return config.Save(path, config.Default())
}

func convertFile(svc *parser.Service, inputPath, outputPath string, asJSON, header bool) error {
	txns, err := svc.ParseFile(inputPath)
	if err != nil {
		return err
	}

	if asJSON {
		result := models.Partition(txns, svc.OCREnabled())
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + ".out.csv"
	}

	w := &writer.CSVWriter{IncludeHeader: header}
	if err := w.WriteToFile(outPath, txns); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("%s: %d transaction(s) -> %s\n", inputPath, len(txns), outPath)
	return nil
}
