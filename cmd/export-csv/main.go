package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"goalboom/internal/heroes"
	"goalboom/internal/logging"
	"goalboom/pkg/models"
)

func main() {
	var (
		dataDir  = flag.String("data", "data", "bundled data directory")
		assetDir = flag.String("assets", "", "image asset directory (default <data>/images)")
		out      = flag.String("out", "data/export/heroes.csv", "output CSV path for heroes")
	)
	flag.Parse()

	logger, err := logging.New(logging.Config{Level: "info"})
	if err != nil {
		slog.Error("logger setup failed", "err", err)
		os.Exit(1)
	}

	if *assetDir == "" {
		*assetDir = filepath.Join(*dataDir, "images")
	}

	catalog := heroes.NewCatalog(heroes.NewAssetResolver(os.DirFS(*assetDir)), logger)
	if err := catalog.LoadFS(os.DirFS(*dataDir)); err != nil {
		logger.Error("load heroes failed", "err", err)
		os.Exit(1)
	}

	if err := exportHeroes(*out, catalog.All()); err != nil {
		logger.Error("export heroes failed", "err", err)
		os.Exit(1)
	}

	logger.Info("✅ exported heroes", "count", catalog.Len(), "path", *out)
}

func exportHeroes(outPath string, items []models.HeroRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeCSV(f, items); err != nil {
		return err
	}
	return f.Close()
}

func writeCSV(w io.Writer, items []models.HeroRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "country", "flag", "gender", "jobs", "quotes", "info", "small_image", "large_image"}); err != nil {
		return err
	}

	for _, h := range items {
		jobs := make([]string, 0, len(h.Jobs))
		for _, j := range h.Jobs {
			jobs = append(jobs, string(j))
		}
		row := []string{
			h.Name,
			h.Country,
			h.CountryFlag,
			string(h.Gender),
			strings.Join(jobs, "|"),
			strings.Join(h.Quotes, "|"),
			h.Info,
			h.SmallImage,
			h.LargeImage,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", h.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
