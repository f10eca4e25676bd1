// Command snapshot exports and imports the stored state record.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dailywords/internal/config"
	"dailywords/internal/logger"
	"dailywords/internal/state"
	"dailywords/internal/store"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportConfig := exportCmd.String("config", "", "path to a YAML config file")
	exportOutput := exportCmd.String("output", "", "output file (default: snapshot_YYYYMMDD_HHMMSS.json, - for stdout)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importConfig := importCmd.String("config", "", "path to a YAML config file")
	importInput := importCmd.String("input", "", "input file (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var (
		configPath string
		run        func(ctx context.Context, ks *store.KeyStore) error
	)
	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		configPath = *exportConfig
		run = func(ctx context.Context, ks *store.KeyStore) error {
			return export(ctx, ks, *exportOutput)
		}
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Fprintln(os.Stderr, "Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		configPath = *importConfig
		run = func(ctx context.Context, ks *store.KeyStore) error {
			return importFile(ctx, ks, *importInput)
		}
	default:
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(os.Stderr, cfg.Server.LogLevel)

	ctx := context.Background()
	st, err := store.New(ctx, cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		log.Error("open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := run(ctx, st.Key(cfg.Database.StorageKey)); err != nil {
		log.Error(os.Args[1]+" failed", "error", err)
		st.Close()
		os.Exit(1)
	}
}

func export(ctx context.Context, ks *store.KeyStore, output string) error {
	payload, err := ks.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return errors.New("nothing stored yet; start the server once to seed the state")
	}
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		return fmt.Errorf("format snapshot: %w", err)
	}
	pretty.WriteByte('\n')

	if output == "-" {
		_, err := io.Copy(os.Stdout, &pretty)
		return err
	}
	if output == "" {
		output = fmt.Sprintf("snapshot_%s.json", time.Now().Format("20060102_150405"))
	}
	if dir := filepath.Dir(output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Printf("Exported snapshot to %s\n", output)
	return nil
}

func importFile(ctx context.Context, ks *store.KeyStore, input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	s, err := state.Decode(data)
	if err != nil {
		return err
	}
	payload, err := state.Encode(s)
	if err != nil {
		return err
	}
	if err := ks.Save(ctx, payload); err != nil {
		return err
	}
	fmt.Printf("Imported %d lists and %d tasks from %s\n", len(s.WordLists), len(s.ReviewTasks), input)
	return nil
}

func printUsage() {
	fmt.Println("Usage: snapshot <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export   Write the stored state record to a JSON file")
	fmt.Println("  import   Replace the stored state record with a JSON file")
	fmt.Println()
	fmt.Println("Run 'snapshot <command> -h' for command options.")
}
