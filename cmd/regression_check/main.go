package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"bazi-engine/internal/config"
	"bazi-engine/internal/fixtures"
	"bazi-engine/internal/regression"
	"bazi-engine/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	suiteName := flag.String("suite", "", "only run this fixture suite")
	verbose := flag.Bool("v", false, "print passing cases too")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	suites, err := loadSuites(*suiteName)
	if err != nil {
		log.Fatalf("load fixtures: %v", err)
	}

	chartSvc := service.NewChartService(logger, nil)
	sum, err := regression.Run(ctx, chartSvc, suites, cfg.BatchParallel)
	if err != nil {
		log.Fatalf("regression run failed: %v", err)
	}

	current := ""
	for _, r := range sum.Results {
		if r.Suite != current {
			current = r.Suite
			fmt.Printf("%s[%s]%s\n", colorCyan, current, colorReset)
		}
		if r.OK() && !*verbose {
			continue
		}
		color := colorGreen
		if !r.OK() {
			color = colorRed
		}
		fmt.Printf("%s%s%s\n", color, formatResult(r), colorReset)
	}

	fmt.Println("==== Resultado ====")
	fmt.Println(formatSummary(sum))

	if !sum.Passed() {
		os.Exit(1)
	}
}

func loadSuites(name string) ([]fixtures.Suite, error) {
	if name == "" {
		return fixtures.LoadAll()
	}
	s, err := fixtures.LoadSuite(name)
	if err != nil {
		return nil, err
	}
	return []fixtures.Suite{*s}, nil
}
