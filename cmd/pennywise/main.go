package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lthomson/pennywise/internal/config"
	"github.com/lthomson/pennywise/internal/database"
	"github.com/lthomson/pennywise/internal/database/repository"
	"github.com/lthomson/pennywise/internal/engine"
	"github.com/lthomson/pennywise/internal/llm"
	"github.com/lthomson/pennywise/internal/logger"
	"github.com/lthomson/pennywise/internal/secrets"
	"github.com/lthomson/pennywise/internal/service"
)

const usage = `usage: pennywise <command> [flags]

commands:
  analyze    recommend budgets from transaction history (reads JSON on stdin)
  adapt      adjust budgets for a life event (reads JSON on stdin)
  insights   generate spending insights (reads JSON on stdin)
  ask        answer a free-form question (reads JSON on stdin)
  recent     list recently stored insights
  set-key    store an API key for a provider
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)
	ctx := context.Background()

	if os.Args[1] == "set-key" {
		if err := setKey(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "set-key: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatal().Err(err).Msg("mkdir db dir")
	}
	if err := database.RunMigrations(cfg.Database.Path, migrationsDir()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()

	timeout := cfg.AI.Timeout()
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	provider := llm.ForConfig(cfg.AI.Provider, resolveAPIKey(cfg), cfg.AI.Model, timeout)
	if provider == nil {
		log.Debug().Msg("no ai provider configured; rule-based policies only")
	}

	adv := service.NewAdvisor(
		engine.New(provider, log),
		repository.NewInsightRepo(db),
		log,
	)

	if err := run(ctx, adv, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

type analyzeInput struct {
	Transactions   []engine.Transaction `json:"transactions"`
	MonthlyIncome  decimal.Decimal      `json:"monthly_income"`
	CurrentBudgets engine.BudgetMap     `json:"current_budgets"`
	WindowMonths   int                  `json:"window_months"`
}

type adaptInput struct {
	EventType        string           `json:"event_type"`
	EventDescription string           `json:"event_description"`
	CurrentBudgets   engine.BudgetMap `json:"current_budgets"`
	SpendingPatterns engine.BudgetMap `json:"spending_patterns"`
}

type insightsInput struct {
	Transactions []engine.Transaction `json:"transactions"`
	Budgets      engine.BudgetMap     `json:"budgets"`
}

type askInput struct {
	Question string                 `json:"question"`
	Context  engine.QuestionContext `json:"context"`
}

func run(ctx context.Context, adv *service.Advisor, cmd string, args []string) error {
	switch cmd {
	case "analyze":
		var in analyzeInput
		if err := readInput(&in); err != nil {
			return err
		}
		if in.WindowMonths <= 0 {
			in.WindowMonths = 3
		}
		res := adv.Analyze(ctx, in.Transactions, in.MonthlyIncome, in.CurrentBudgets, in.WindowMonths)
		return writeOutput(res)

	case "adapt":
		var in adaptInput
		if err := readInput(&in); err != nil {
			return err
		}
		res := adv.Adapt(ctx, in.EventType, in.EventDescription, in.CurrentBudgets, in.SpendingPatterns)
		return writeOutput(res)

	case "insights":
		var in insightsInput
		if err := readInput(&in); err != nil {
			return err
		}
		out := adv.Insights(ctx, in.Transactions, in.Budgets)
		return writeOutput(map[string][]string{"insights": out})

	case "ask":
		var in askInput
		if err := readInput(&in); err != nil {
			return err
		}
		answer := adv.Ask(ctx, in.Question, in.Context)
		return writeOutput(map[string]string{"answer": answer})

	case "recent":
		fs := flag.NewFlagSet("recent", flag.ContinueOnError)
		limit := fs.Int("limit", 10, "number of insights to list")
		if err := fs.Parse(args); err != nil {
			return err
		}
		stored, err := adv.Recent(ctx, *limit)
		if err != nil {
			return err
		}
		for _, in := range stored {
			read := " "
			if in.IsRead {
				read = "*"
			}
			fmt.Printf("%s [%s] %-10s %s\n", read, in.CreatedAt.Format("2006-01-02"), in.Type, in.Content)
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func setKey(args []string) error {
	fs := flag.NewFlagSet("set-key", flag.ContinueOnError)
	provider := fs.String("provider", "", "provider name (openai or anthropic)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *provider == "" {
		return fmt.Errorf("missing -provider")
	}
	fmt.Fprint(os.Stderr, "API key: ")
	var key string
	if _, err := fmt.Scanln(&key); err != nil {
		return err
	}
	return secrets.Store(*provider, key)
}

func readInput(v any) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	return nil
}

func writeOutput(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveAPIKey checks the environment first, then the local key store,
// then the config file.
func resolveAPIKey(cfg config.Config) string {
	if env := cfg.AI.APIKeyEnvName(); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	if k, err := secrets.Fetch(cfg.AI.Provider); err == nil {
		return k
	}
	return strings.TrimSpace(cfg.AI.APIKey)
}

// migrationsDir resolves the migrations directory relative to the binary,
// falling back to the source layout for `go run`.
func migrationsDir() string {
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), "migrations")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "internal/database/migrations"
}
