package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/younsl/spotbid/internal/version"
	"github.com/younsl/spotbid/pkg/config"
	"github.com/younsl/spotbid/pkg/diag"
	"github.com/younsl/spotbid/pkg/formatter"
	"github.com/younsl/spotbid/pkg/gateway"
	"github.com/younsl/spotbid/pkg/pricing"
	"github.com/younsl/spotbid/pkg/workflow"
)

var showVersion bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "spotbid",
		Short: "Pick the cheapest spot offer and submit one reservation request",
		Long: `spotbid resolves your latest image, one key pair and one security
group, ranks instance types by their cheapest per-zone average spot
price over the last hour, and submits a single one-time spot request
for the offer you pick.`,
		Run: func(cmd *cobra.Command, args []string) {
			if showVersion {
				info := version.Get()
				fmt.Printf("spotbid version %s (built: %s, commit: %s, %s)\n",
					info.Version, info.BuildDate, info.GitCommit, info.GoVersion)
				return
			}

			if err := run(); err != nil {
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.Flags().StringP("region", "r", "", "AWS region to launch in (default: AWS_REGION or us-east-1)")
	rootCmd.Flags().StringP("key-pattern", "k", "", "Pattern that must match exactly one key pair name")
	rootCmd.Flags().StringP("group-pattern", "g", "", "Pattern that must match exactly one security group name or description")
	rootCmd.Flags().StringP("type-pattern", "t", "", "Pattern selecting candidate instance types from the catalog")
	rootCmd.Flags().String("product", "Linux/UNIX", "Product description used for spot price history")
	rootCmd.Flags().Float64P("bid-multiplier", "m", 1.25, "Bid = multiplier * cheapest average price")
	rootCmd.Flags().Bool("replay", false, "Replay embedded provider fixtures instead of calling AWS")
	rootCmd.Flags().Bool("test-bid", false, "Bid a fixed low test price that will never be fulfilled")
	rootCmd.Flags().String("log-dir", "", "Directory for the per-run diagnostics log (default: system temp dir)")

	viper.SetEnvPrefix("SPOTBID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		formatter.Errorf(os.Stderr, "Error: %v\n", err)
		return err
	}

	rec, err := diag.NewRecorder(cfg.LogDir)
	if err != nil {
		formatter.Errorf(os.Stderr, "Error: %v\n", err)
		return err
	}

	var gw gateway.Gateway
	var prices *pricing.Client
	if cfg.Replay {
		gw = gateway.NewReplay(rec)
	} else {
		ec2gw, err := gateway.NewEC2Gateway(cfg.Region, cfg.ProductDescription, rec)
		if err != nil {
			formatter.Errorf(os.Stderr, "Error: %v\n", err)
			rec.Close(true)
			fmt.Fprintf(os.Stderr, "Diagnostics log kept at %s\n", rec.Path())
			return err
		}
		gw = ec2gw

		prices, err = pricing.NewClient(cfg.Region)
		if err != nil {
			formatter.Warnf(os.Stderr, "On-demand pricing unavailable: %v\n", err)
			prices = nil
		}
	}

	wf := workflow.New(cfg, gw, prices, rec, os.Stdin, os.Stdout)
	wf.Spinner = true

	err = wf.Run(context.Background())
	if err == nil || errors.Is(err, workflow.ErrAborted) {
		// Abort is a clean outcome, the log goes away with it.
		if rmErr := rec.Close(false); rmErr != nil {
			formatter.Warnf(os.Stderr, "Could not remove diagnostics log: %v\n", rmErr)
		}
		return nil
	}

	formatter.Errorf(os.Stderr, "Error: %v\n", err)
	rec.Close(true)
	fmt.Fprintf(os.Stderr, "Diagnostics log kept at %s\n", rec.Path())
	return err
}
