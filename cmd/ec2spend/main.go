package main

import (
	"context"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/younsl/ec2spend/internal/config"
	"github.com/younsl/ec2spend/internal/logging"
	"github.com/younsl/ec2spend/internal/version"
	"github.com/younsl/ec2spend/pkg/aws"
	"github.com/younsl/ec2spend/pkg/formatter"
	"github.com/younsl/ec2spend/pkg/pricing"
	"github.com/younsl/ec2spend/pkg/report"
)

var (
	cfgFile       string
	showVersion   bool
	listTypes     bool
	showSpinner   = true
	stageMessages = map[string]string{
		report.StageInstances: "Getting instance information",
		report.StageVolumes:   "Getting volume information",
		report.StagePrices:    "Resolving instance prices",
	}
	stageUnits = map[string]string{
		report.StageInstances: "instances selected",
		report.StageVolumes:   "volumes found",
		report.StagePrices:    "instances priced",
	}
)

// startStageSpinner creates and starts a spinner on stderr for a pipeline stage
func startStageSpinner(stage string) func(count int) {
	if !showSpinner {
		return func(int) {}
	}

	start := time.Now()
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" %s ...", stageMessages[stage])
	s.Start()

	return func(count int) {
		s.FinalMSG = fmt.Sprintf("✓ [%d %s] %s - Completed in %.2f seconds\n",
			count, stageUnits[stage], stageMessages[stage], time.Since(start).Seconds())
		s.Stop()
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "ec2spend",
		Short: "CLI tool to summarize the hourly cost of running EC2 instances",
		Long: `ec2spend fetches the running EC2 instances and EBS volumes of a region,
filters them by glob patterns and prints their estimated cost grouped by
key pair, AMI ID and tag.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.ec2spend.yaml)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.Flags().BoolVar(&listTypes, "list-types", false, "List the on-demand price table and exit")
	rootCmd.Flags().BoolVar(&showSpinner, "spinner", true, "Show progress spinners on stderr")
	config.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if showVersion {
		fmt.Println(version.Get())
		return nil
	}

	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return err
	}
	used, err := config.ReadConfigFile(v, cfgFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if used != "" {
		log.Info("using config file", zap.String("path", used))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	onDemand, err := newOnDemandPricer(ctx, cfg)
	if err != nil {
		return err
	}

	if listTypes {
		table, ok := onDemand.(pricing.PriceTable)
		if !ok {
			return fmt.Errorf("price source '%s' cannot be listed", cfg.PriceSource)
		}
		formatter.PrintPriceTable(os.Stdout, table)
		return nil
	}

	client, err := aws.NewClient(ctx, aws.Options{
		Region:  cfg.Region,
		Profile: cfg.Profile,
		Retries: cfg.Retries,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	stats := pricing.NewStats()
	pipeline := &report.Pipeline{
		Inventory: client,
		Resolver:  pricing.NewResolver(onDemand, cfg.PriceSource, pricing.NewSpotCache(client, stats), stats),
		Logger:    log,
		OnStage:   startStageSpinner,
	}

	r, err := pipeline.Build(ctx, cfg.Filter)
	if err != nil {
		return err
	}

	if cfg.Output == config.OutputJSON {
		return formatter.WriteCostReportJSON(os.Stdout, r)
	}

	if err := formatter.WriteCostReport(os.Stdout, r); err != nil {
		return err
	}
	formatter.PrintCostSummary(os.Stdout, r)
	formatter.PrintPriceLookupStats(os.Stdout, stats.Get())

	return nil
}

// newOnDemandPricer returns the on-demand price source selected in cfg
func newOnDemandPricer(ctx context.Context, cfg config.Config) (pricing.OnDemandPricer, error) {
	switch cfg.PriceSource {
	case pricing.PricingSourceCatalog:
		table, err := pricing.CatalogTable(cfg.Region)
		if err != nil {
			return nil, err
		}
		return table, nil
	case pricing.PricingSourceAPI:
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Profile != "" {
			opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
		}
		pricer, err := pricing.NewAPIPricer(ctx, cfg.Region, opts...)
		if err != nil {
			return nil, err
		}
		return pricer, nil
	default:
		return pricing.LegacyPriceTable, nil
	}
}
