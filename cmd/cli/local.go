package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"goalboom/internal/dataset"
	"goalboom/internal/heroes"
	"goalboom/internal/logging"
	"goalboom/internal/slides"
)

func (o *globalOpts) assets() string {
	if o.assetDir != "" {
		return o.assetDir
	}
	return filepath.Join(o.dataDir, "images")
}

func (o *globalOpts) loadCatalog(logger *slog.Logger) (*heroes.Catalog, error) {
	c := heroes.NewCatalog(heroes.NewAssetResolver(os.DirFS(o.assets())), logger)
	if err := c.LoadFS(os.DirFS(o.dataDir)); err != nil {
		return nil, err
	}
	return c, nil
}

func quietLogger() *slog.Logger {
	return logging.NewWriter(io.Discard, "error")
}

func newValidateCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every bundled dataset and report soft data gaps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.NewWriter(cmd.ErrOrStderr(), "debug")
			fsys := os.DirFS(opts.dataDir)

			regions, err := dataset.LoadRegions(fsys)
			if err != nil {
				return fmt.Errorf("regions: %w", err)
			}
			jobs, err := dataset.LoadJobs(fsys, logger)
			if err != nil {
				return fmt.Errorf("jobs: %w", err)
			}
			deck, err := slides.LoadDeck(fsys)
			if err != nil {
				return fmt.Errorf("slides: %w", err)
			}
			catalog, err := opts.loadCatalog(logger)
			if err != nil {
				return fmt.Errorf("heroes: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ %d regions, %d jobs, %d slides, %d heroes\n",
				len(regions), len(jobs), len(deck), catalog.Len())
			return nil
		},
	}
}

func newRegionsCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions and their countries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			regions, err := dataset.LoadRegions(os.DirFS(opts.dataDir))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range regions {
				fmt.Fprintln(w, r.Name)
				for _, e := range r.Entries {
					fmt.Fprintf(w, "  %s %s\n", e.Flag, e.Country)
				}
			}
			return nil
		},
	}
}

func newJobsCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the occupations offered by the picker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := dataset.LoadJobs(os.DirFS(opts.dataDir), logging.NewWriter(cmd.ErrOrStderr(), "warn"))
			if err != nil {
				return err
			}
			for _, j := range jobs {
				fmt.Fprintln(cmd.OutOrStdout(), j)
			}
			return nil
		},
	}
}

func newSlidesCmd(opts *globalOpts) *cobra.Command {
	var steps string
	cmd := &cobra.Command{
		Use:   "slides",
		Short: "Walk the intro carousel, e.g. --steps first,next,next,back",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deck, err := slides.LoadDeck(os.DirFS(opts.dataDir))
			if err != nil {
				return err
			}
			p := slides.NewPager(deck)
			for _, step := range strings.Split(steps, ",") {
				var (
					page slides.Page
					ok   bool
				)
				switch strings.TrimSpace(step) {
				case "first":
					page, ok = p.First()
				case "next":
					page, ok = p.Advance()
				case "back":
					page, ok = p.Retreat()
				default:
					return fmt.Errorf("unknown step %q", step)
				}
				if !ok {
					return fmt.Errorf("no slides configured")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s -> [%d] %s %s\n", step, page.Index, page.Image, page.Caption)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&steps, "steps", "first,next,next,next", "comma-separated steps")
	return cmd
}

func newHeroesCmd(opts *globalOpts) *cobra.Command {
	var gender, occupation, country string
	cmd := &cobra.Command{
		Use:   "heroes",
		Short: "Query the local hero catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := heroes.ParseQuery(gender, occupation, country)
			if err != nil {
				return err
			}
			catalog, err := opts.loadCatalog(quietLogger())
			if err != nil {
				return err
			}

			matches := catalog.Query(q)
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no heroes found yet")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCOUNTRY\tGENDER\tJOBS")
			for _, h := range matches {
				jobs := make([]string, 0, len(h.Jobs))
				for _, j := range h.Jobs {
					jobs = append(jobs, string(j))
				}
				fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", h.Name, h.CountryFlag, h.Country, h.Gender, strings.Join(jobs, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&gender, "gender", "", "woman | man | unspecified")
	cmd.Flags().StringVar(&occupation, "occupation", "Developer", "occupation label")
	cmd.Flags().StringVar(&country, "country", "", "country name (required)")
	_ = cmd.MarkFlagRequired("country")
	return cmd
}
