package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hjpark/nukewire/config"
	"github.com/hjpark/nukewire/dates"
	"github.com/hjpark/nukewire/pipeline"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Optional .env for SLACK_WEBHOOK_URL and friends; absence is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	switch subcommand {
	case "run":
		handleRun(args, true)
	case "crawl":
		handleRun(args, false)
	case "send":
		handleSend(args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("nukewire - nuclear industry news digest pipeline")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  nukewire <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run        Crawl all sources, build the digest, deliver it")
	fmt.Println("  crawl      Crawl all sources and build the digest without delivering")
	fmt.Println("  send       Re-deliver the stored digest for the target day")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  NUKEWIRE_CONFIG      Path to config file (default: nukewire.yaml)")
	fmt.Println("  NUKEWIRE_OUTPUT_DIR  Artifact output directory")
	fmt.Println("  NUKEWIRE_DB          Path to digest database")
	fmt.Println("  SLACK_WEBHOOK_URL    Webhook endpoint; delivery is skipped when unset")
}

func loadConfig(fs *flag.FlagSet, args []string) *config.Config {
	configPath := fs.String("config", getEnv("NUKEWIRE_CONFIG", config.DefaultPath), "Path to config file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func handleRun(args []string, deliver bool) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfg := loadConfig(fs, args)

	if !deliver {
		cfg.SlackWebhookURL = ""
	}

	report, err := pipeline.Run(cfg, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: run failed: %v\n", err)
		os.Exit(1)
	}

	d := report.Digest
	fmt.Printf("✓ Digest built for %s (run %s)\n", d.TargetDate, report.RunID)
	fmt.Printf("  News records: %d (energy_news: %d, knpnews: %d, kaif: %d)\n",
		d.TotalCount, d.Sources.EnergyNews, d.Sources.KNPNews, d.Sources.KAIF)
	fmt.Printf("  Bulletin posts: %d\n", d.PostsCount)
	if deliver {
		if report.Delivered {
			fmt.Println("  Delivered to Slack.")
		} else {
			fmt.Println("  Not delivered (no webhook configured or delivery failed).")
		}
	}
}

func handleSend(args []string) {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	cfg := loadConfig(fs, args)

	if err := pipeline.Send(cfg, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: send failed: %v\n", err)
		os.Exit(1)
	}

	target := dates.Yesterday(time.Now())
	fmt.Printf("✓ Digest for %s sent\n", target.Dotted())
}
