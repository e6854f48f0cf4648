// Command propscan scrapes rental listings and reports investment metrics.
//
// Usage:
//
//	propscan params
//	propscan analyze <url> [-csv file]
//	propscan find-best <url> [-count N]
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/propscan/propscan/internal/business/analysis"
	"github.com/propscan/propscan/internal/business/scraper"
	"github.com/propscan/propscan/internal/platform/config"
	"github.com/propscan/propscan/pkg/model"
	"github.com/propscan/propscan/pkg/money"
)

func main() {
	_ = godotenv.Load(".env.local", ".env")

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen})))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := scraper.NewHTTPFetcher(cfg.HTTPTimeout, cfg.HTTPRetries, cfg.RetryBackoff)
	scr := scraper.New(fetcher, cfg.ListingBaseURL, cfg.ScrapeWorkers)

	switch os.Args[1] {
	case "params":
		listParams()
	case "analyze":
		fs := flag.NewFlagSet("analyze", flag.ExitOnError)
		csvPath := fs.String("csv", "", "write the analysis to a CSV file instead of stdout")
		_ = fs.Parse(os.Args[2:])
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: propscan analyze <url> [-csv file]")
			os.Exit(2)
		}
		os.Exit(analyzeProperty(ctx, scr, fs.Arg(0), *csvPath))
	case "find-best":
		fs := flag.NewFlagSet("find-best", flag.ExitOnError)
		count := fs.Int("count", 10, "number of best properties to report")
		_ = fs.Parse(os.Args[2:])
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: propscan find-best <url> [-count N]")
			os.Exit(2)
		}
		os.Exit(findBest(ctx, scr, fs.Arg(0), *count))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  propscan params                         list the configurable parameters
  propscan analyze <url> [-csv file]      analyze one property listing
  propscan find-best <url> [-count N]     rank the properties behind a search page`)
}

func listParams() {
	fmt.Println("All Parameters")
	fmt.Println("****************")
	for _, p := range analysis.Registry {
		fmt.Printf("%s\t%v\t%s\n", p.Key, p.Default, p.Description)
	}
}

func analyzeProperty(ctx context.Context, scr *scraper.Scraper, url, csvPath string) int {
	slog.Info("scraping", "url", url)
	res := scr.ScrapeProperty(ctx, url)

	for _, err := range res.Errors {
		slog.Error("scrape error", "err", err)
	}
	for _, w := range res.Warnings {
		slog.Warn("scrape warning", "warning", w)
	}
	if !res.OK() {
		slog.Error("can not continue", "errors", len(res.Errors), "warnings", len(res.Warnings))
		return 1
	}

	result, err := analysis.Run(res.Property, analysis.Resolve(res.Property))
	if err != nil {
		slog.Error("analysis failed", "err", err)
		return 1
	}

	if csvPath != "" {
		if err := writeAnalysisCSV(csvPath, result); err != nil {
			slog.Error("write csv", "err", err)
			return 1
		}
		slog.Info("wrote analysis", "path", csvPath)
		return 0
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.Error("encode analysis", "err", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func findBest(ctx context.Context, scr *scraper.Scraper, url string, count int) int {
	slog.Info("parsing listings", "url", url)
	results, err := scr.ScrapeListings(ctx, url)
	if err != nil {
		slog.Error("listing scrape failed", "err", err)
		return 1
	}

	analyses, excluded := analysis.AnalyzeBatch(results)
	slog.Info("analyzed listings", "total", len(results), "analyzed", len(analyses), "excluded", excluded)

	analysis.RankByCashFlowPerUnit(analyses)
	best := analysis.TopN(analyses, count)

	fmt.Println("********************************")
	fmt.Printf("%d best properties - by cash flow per unit\n", len(best))
	fmt.Println("********************************")
	for i, a := range best {
		p := a.Property
		fmt.Printf("%d. %s\n\t%s\n\tNumber of Units: %d\n\tAsking Price: %s\n\tCash Flow Per Unit: %s\n\tCOCR: %s\n",
			i+1, p.DisplayName(), p.URL, p.NumUnits,
			money.Format(p.Price), money.Format(a.CashFlowPerUnit), money.FormatPercent(a.COCR))
	}
	return 0
}

func writeAnalysisCSV(path string, a model.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	rows := [][]string{
		{"address", a.Property.DisplayName()},
		{"url", a.Property.URL},
		{"units", strconv.Itoa(a.Property.NumUnits)},
		{"asking_price", money.Format(a.Property.Price)},
		{"annual_taxes", money.Format(a.Property.AnnualTaxes)},
		{"total_rent", money.Format(a.Property.TotalRent)},
		{"loan_amount", money.Format(a.LoanAmount)},
		{"total_cash_needed", money.Format(a.TotalCashNeeded)},
		{"gross_income", money.Format(a.GrossIncome)},
		{"monthly_p_and_i", money.Format(a.MonthlyPAndI)},
		{"monthly_operating_expenses", money.Format(a.MonthlyOperatingExpenses)},
		{"net_operating_income", money.Format(a.NetOperatingIncome)},
		{"total_cash_flow", money.Format(a.TotalCashFlow)},
		{"cash_flow_per_unit", money.Format(a.CashFlowPerUnit)},
		{"cap_rate", money.FormatPercent(a.CapRate)},
		{"loan_constant", money.FormatPercent(a.LoanConstant)},
		{"cocr", money.FormatPercent(a.COCR)},
		{"debt_coverage", fmt.Sprintf("%.2f", a.DebtCoverage)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}
