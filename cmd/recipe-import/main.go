// Command recipe-import is an operator tool for seeding the recipe store
// and pruning old data without going through the HTTP surface.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"pantry-planner/internal/clipper"
	"pantry-planner/internal/config"
	"pantry-planner/internal/database"
	"pantry-planner/internal/llm"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/recipe"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "import":
		importCmd := flag.NewFlagSet("import", flag.ExitOnError)
		urlFile := importCmd.String("file", "", "File with one recipe URL per line")
		importCmd.Parse(os.Args[2:])

		urls := importCmd.Args()
		if *urlFile != "" {
			fromFile, err := readURLs(*urlFile)
			if err != nil {
				log.Fatalf("Failed to read URL file: %v", err)
			}
			urls = append(urls, fromFile...)
		}
		if len(urls) == 0 {
			log.Fatal("No URLs given; pass them as arguments or via -file")
		}

		textGen, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer func() {
			if c, ok := textGen.(llm.Closer); ok {
				_ = c.Close()
			}
		}()

		clip := clipper.NewClipper(textGen, recipe.NewRepository(db.SQL))
		failed := 0
		for _, url := range urls {
			rec, _, err := clip.ClipURL(ctx, url)
			if err != nil {
				log.Printf("Failed to import %s: %v", url, err)
				failed++
				continue
			}
			fmt.Printf("Imported %q (%s)\n", rec.Title, rec.ID)
		}
		if failed > 0 {
			log.Fatalf("%d of %d imports failed", failed, len(urls))
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metrics.NewStore(db.SQL).Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}

func printUsage() {
	fmt.Println("Usage: recipe-import <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  import [-file urls.txt] [url ...]   Clip recipes into the store")
	fmt.Println("  metrics-cleanup [-days N]           Remove old execution metrics")
}
