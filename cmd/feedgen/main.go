package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"giftshop/internal/config"
	"giftshop/internal/domain/catalog"
	"giftshop/internal/infrastructure/feed"
	catalogclient "giftshop/internal/infrastructure/http/catalog"
	"giftshop/pkg/logger"
)

// feedgen regenerates the product feed files (JSON, CSV and Google
// Merchant XML) from the catalog, either from a local JSON file or by
// fetching the published category files.
func main() {
	var (
		inPath  = flag.String("in", "", "local catalog JSON file; skips remote fetch")
		files   = flag.String("files", "products.json", "comma-separated remote catalog files")
		outDir  = flag.String("out", "./feeds", "output directory")
		timeout = flag.Duration("timeout", 60*time.Second, "overall fetch timeout")
	)
	flag.Parse()

	products, err := loadProducts(*inPath, *files, *timeout)
	if err != nil {
		log.Fatalf("load catalog failed: %v", err)
	}
	if len(products) == 0 {
		log.Fatal("catalog is empty, refusing to write empty feeds")
	}

	log.Printf("loaded %d products", len(products))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	outputs := []struct {
		name  string
		write func(*os.File) error
	}{
		{"products.json", func(f *os.File) error { return feed.WriteJSON(f, products) }},
		{"products.csv", func(f *os.File) error { return feed.WriteCSV(f, products) }},
		{"products.xml", func(f *os.File) error { return feed.WriteXML(f, products) }},
	}

	for _, out := range outputs {
		path := filepath.Join(*outDir, out.name)
		if err := writeFeed(path, out.write); err != nil {
			log.Fatalf("write %s: %v", out.name, err)
		}
		log.Printf("wrote %s", path)
	}
}

func loadProducts(inPath, files string, timeout time.Duration) ([]catalog.Product, error) {
	if inPath != "" {
		data, err := os.ReadFile(inPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", inPath, err)
		}
		return catalog.ParseProducts(data)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := catalogclient.NewClient(cfg.Catalog, zlog)
	return client.FetchAll(ctx, strings.Split(files, ","))
}

func writeFeed(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
