package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/movimenta/extrato-ledger/internal/api"
	"github.com/movimenta/extrato-ledger/internal/categorizer"
	"github.com/movimenta/extrato-ledger/internal/config"
	"github.com/movimenta/extrato-ledger/internal/extractor"
	"github.com/movimenta/extrato-ledger/internal/ledger"
	"github.com/movimenta/extrato-ledger/internal/logger"
	"github.com/movimenta/extrato-ledger/internal/models"
	"github.com/movimenta/extrato-ledger/internal/parser"
	"github.com/movimenta/extrato-ledger/internal/report"
)

const version = "1.0.0"

func main() {
	formatFlag := flag.String("format", "pdf", "Output format: pdf or csv")
	outputFlag := flag.String("output", "", "Output file path (defaults to movimentacoes_<timestamp>)")
	titleFlag := flag.String("title", "", "Report title (defaults to \"Movimentações Financeiras\")")
	typeFlag := flag.String("type", "all", "Type filter: entrada, saida or all")
	fromFlag := flag.String("from", "", "Start date filter, DD/MM/AAAA (requires -to)")
	toFlag := flag.String("to", "", "End date filter, DD/MM/AAAA (requires -from)")
	taxonomyFlag := flag.String("taxonomy", "", "YAML file overriding the built-in category taxonomy")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API server instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Extrato Ledger

Converts Brazilian bank statement PDFs into a categorized transaction
ledger and renders it as a paginated PDF report or a CSV file.

Usage:
  extrato-ledger [flags] <extrato.pdf> [extrato2.pdf ...]
  extrato-ledger -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # PDF report with default naming
  extrato-ledger extrato_janeiro.pdf

  # CSV with an explicit output path
  extrato-ledger -format=csv -output=movs.csv extrato.pdf

  # Only debits within a period
  extrato-ledger -type=saida -from=01/01/2024 -to=31/01/2024 extrato.pdf

  # API server (PORT, LOG_LEVEL etc. read from the environment)
  extrato-ledger -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("extrato-ledger v%s\n", version)
		os.Exit(0)
	}

	cat, err := buildCategorizer(*taxonomyFlag)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	if *serveFlag {
		serve(cat)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	opts, err := buildOptions(*titleFlag, *outputFlag, *typeFlag, *fromFlag, *toFlag)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, *formatFlag, opts, cat); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func buildCategorizer(taxonomyPath string) (*categorizer.Categorizer, error) {
	if taxonomyPath == "" {
		return categorizer.New(), nil
	}
	rules, err := categorizer.LoadRules(taxonomyPath)
	if err != nil {
		return nil, err
	}
	return categorizer.NewWithRules(rules), nil
}

func buildOptions(title, output, typ, from, to string) (report.Options, error) {
	opts := report.Options{Title: title, Filename: output}

	switch models.TypeFilter(typ) {
	case models.FilterAll, models.FilterCredit, models.FilterDebit:
		opts.Type = models.TypeFilter(typ)
	default:
		return opts, fmt.Errorf("unknown type %q: use entrada, saida or all", typ)
	}

	if from != "" || to != "" {
		if from == "" || to == "" {
			return opts, fmt.Errorf("date filtering requires both -from and -to")
		}
		start, err := parser.ParseDate(from)
		if err != nil {
			return opts, fmt.Errorf("invalid -from date %q: want DD/MM/AAAA", from)
		}
		end, err := parser.ParseDate(to)
		if err != nil {
			return opts, fmt.Errorf("invalid -to date %q: want DD/MM/AAAA", to)
		}
		opts.Range = &models.DateRange{Start: start, End: end}
	}

	return opts, nil
}

func processFile(inputPath, format string, opts report.Options, cat *categorizer.Categorizer) error {
	if format != "pdf" && format != "csv" {
		return fmt.Errorf("unknown format %q: use pdf or csv", format)
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	pages, err := extractor.ExtractText(inputPath)
	if err != nil {
		return err
	}
	fmt.Printf("  Extracted text from %d page(s)\n", len(pages))

	res := parser.New(cat, logger.Nop()).Parse(pages)
	fmt.Printf("  Found %d transaction(s)\n", len(res.Transactions))
	if len(res.Skipped) > 0 {
		fmt.Printf("  Skipped %d unparseable record(s)\n", len(res.Skipped))
	}

	totals := ledger.Aggregate(res.Transactions)
	fmt.Printf("  Entradas: %s  Saídas: %s  Saldo: %s\n",
		report.FormatBRL(totals.Credits), report.FormatBRL(totals.Debits), report.FormatBRL(totals.Balance))

	ext := "." + format
	outPath := opts.FileFor(ext)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %q: %w", outPath, err)
	}
	defer out.Close()

	if format == "pdf" {
		err = report.RenderPDF(res.Transactions, opts, out)
	} else {
		err = report.RenderDelimited(res.Transactions, opts, out)
	}
	if err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func serve(cat *categorizer.Categorizer) {
	cfg, err := config.Read()
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	log := logger.New(cfg.LogLevel)

	if cfg.TaxonomyFile != "" {
		rules, err := categorizer.LoadRules(cfg.TaxonomyFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading taxonomy")
		}
		cat = categorizer.NewWithRules(rules)
	}

	app := fiber.New(fiber.Config{
		AppName:   "extrato-ledger v" + version,
		BodyLimit: cfg.MaxUploadMB << 20,
	})

	api.NewServer(cat, log).Register(app)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
