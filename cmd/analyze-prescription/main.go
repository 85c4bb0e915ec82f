// Command analyze-prescription runs the prescription authorization
// pipeline against a single image file and prints the analysis report
// as JSON. It uses an in-memory catalog and doctor registry so it can
// run without PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/repository"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/match"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/ocr"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/service"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/validate"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	var (
		enhance   = flag.Bool("enhance", true, "preprocess the image before OCR")
		threshold = flag.Float64("threshold", match.DefaultThreshold, "similarity ratio a match must exceed")
		medicines = flag.String("medicines", "", "comma-separated catalog names (name:price:tax:stock)")
		doctors   = flag.String("doctors", "", "comma-separated registered doctor numbers")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: analyze-prescription [flags] <image-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	endpoint := os.Getenv("PHARMAGENIE_OCR_ENDPOINT")
	apiKey := os.Getenv("PHARMAGENIE_OCR_API_KEY")
	if endpoint == "" || apiKey == "" {
		fmt.Fprintln(os.Stderr, "PHARMAGENIE_OCR_ENDPOINT and PHARMAGENIE_OCR_API_KEY must be set")
		os.Exit(2)
	}

	image, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		printReport(domain.ErrorReport("Image not found"))
		os.Exit(1)
	}

	catalog := seedCatalog(*medicines, *doctors)

	log := logger.New("analyze-prescription", "development")
	analyzer := service.NewAnalyzer(
		ocr.NewAzureExtractor(endpoint, apiKey, *enhance),
		validate.NewDoctorValidator(catalog),
		validate.NewDateChecker(),
		match.NewMatcher(catalog, *threshold),
		log,
	)

	report, err := analyzer.Analyze(context.Background(), image)
	if err != nil {
		printReport(domain.ErrorReport(err.Error()))
		os.Exit(1)
	}

	printReport(report)
}

func seedCatalog(medicines, doctors string) *repository.MemoryCatalog {
	catalog := repository.NewMemoryCatalog()

	if medicines == "" {
		// Small default stock for ad-hoc runs
		catalog.AddMedicine("Paracetamol", 2.50, 5, 100)
		catalog.AddMedicine("Amoxicillin", 8.90, 5, 50)
		catalog.AddMedicine("Ibuprofen", 3.20, 5, 80)
	} else {
		for _, entry := range strings.Split(medicines, ",") {
			parts := strings.Split(strings.TrimSpace(entry), ":")
			if len(parts) != 4 {
				continue
			}
			var price, tax float64
			var stock int
			fmt.Sscanf(parts[1], "%f", &price)
			fmt.Sscanf(parts[2], "%f", &tax)
			fmt.Sscanf(parts[3], "%d", &stock)
			catalog.AddMedicine(parts[0], price, tax, stock)
		}
	}

	for _, number := range strings.Split(doctors, ",") {
		if number = strings.TrimSpace(number); number != "" {
			catalog.RegisterDoctor(number)
		}
	}

	return catalog
}

func printReport(report *domain.Report) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(report)
}
