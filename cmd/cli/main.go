package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080"

type globalOpts struct {
	baseURL   string
	tokenPath string
	dataDir   string
	assetDir  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:           "goalboom",
		Short:         "Inspect onboarding data and drive the onboarding API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "api", defaultBaseURL, "API base URL")
	root.PersistentFlags().StringVar(&opts.tokenPath, "token", defaultTokenPath(), "session token file path")
	root.PersistentFlags().StringVar(&opts.dataDir, "data", "data", "bundled data directory")
	root.PersistentFlags().StringVar(&opts.assetDir, "assets", "", "image asset directory (default <data>/images)")

	root.AddCommand(
		newValidateCmd(opts),
		newRegionsCmd(opts),
		newJobsCmd(opts),
		newSlidesCmd(opts),
		newHeroesCmd(opts),
		newOnboardCmd(opts),
		newWatchCmd(opts),
	)
	return root
}
