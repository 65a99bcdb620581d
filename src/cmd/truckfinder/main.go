// Package main provides the unified truckfinder CLI with mode detection.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"truckfinder-agent/src/agent"
	"truckfinder-agent/src/analytics"
	"truckfinder-agent/src/api"
	"truckfinder-agent/src/broker"
	"truckfinder-agent/src/config"
	"truckfinder-agent/src/dataset"
	"truckfinder-agent/src/inventory"
	"truckfinder-agent/src/llm"
	"truckfinder-agent/src/logger"
	"truckfinder-agent/src/mcp"
	"truckfinder-agent/src/store"
	"truckfinder-agent/src/tools"
	"truckfinder-agent/src/tui"
)

const version = "1.0.0"

var appConfig *config.Config

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "truckfinder",
	Short: "TruckFinder - A conversational search assistant for commercial vehicles",
	Long: `TruckFinder is an LLM-backed search assistant over a commercial
vehicle inventory (trucks, tractor units, trailers, vans).

It supports two modes:
- Local Mode: In-memory broker and stores, single process (default)
- Distributed Mode: Redpanda telemetry + Postgres interaction store

Mode is auto-detected based on the REDPANDA_BROKERS environment variable.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appConfig = config.Load()
	},
}

// serveCmd runs the HTTP API with the chat agent behind it.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Load the inventory and serve the chat and browse API over HTTP.

Requires OPENROUTER_API_KEY. In distributed mode (REDPANDA_BROKERS set)
telemetry is published to Redpanda and an analytics agent persists it
to Postgres; in local mode everything runs in-process.`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := config.LoadForAgent(); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}

		log := logger.NewConsoleLogger(appConfig.Verbose)
		engine, registry := mustLoadEngine(log)

		client, err := llm.NewClient(llm.Config{
			APIKey:  appConfig.OpenRouterAPIKey,
			Model:   appConfig.OpenRouterModel,
			BaseURL: appConfig.OpenRouterBaseURL,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create LLM client: %v\n", err)
			os.Exit(1)
		}

		sessions, err := store.NewSQLiteSessionStore(appConfig.SessionDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open session store: %v\n", err)
			os.Exit(1)
		}
		defer sessions.Close()

		brk, interactions := mustOpenTelemetry(log)
		defer brk.Close()
		defer interactions.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		usage := analytics.NewAgent(brk, interactions, log)
		go func() {
			if err := usage.Run(ctx); err != nil {
				log.Error("Analytics agent stopped: %v", err)
			}
		}()

		chat := agent.New(client, registry, sessions, brk, log)
		srv := api.NewServer(appConfig.HTTPAddr, engine, chat, usage, log)

		go func() {
			log.Info("Listening on %s (%s mode)", appConfig.HTTPAddr, appConfig.Mode())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
				os.Exit(1)
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Info("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Shutdown error: %v", err)
		}
	},
}

// chatCmd runs the terminal chat UI against an in-process agent.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Start an interactive terminal chat session backed by an
in-process agent. Requires OPENROUTER_API_KEY.`,
	Run: func(cmd *cobra.Command, args []string) {
		if appConfig.OpenRouterAPIKey == "" {
			fmt.Fprintln(os.Stderr, "ERROR: OPENROUTER_API_KEY environment variable is required for chat")
			os.Exit(1)
		}

		// The alternate screen owns the terminal, so logging is muted.
		log := logger.NewSilentLogger()
		_, registry := mustLoadEngine(log)

		client, err := llm.NewClient(llm.Config{
			APIKey:  appConfig.OpenRouterAPIKey,
			Model:   appConfig.OpenRouterModel,
			BaseURL: appConfig.OpenRouterBaseURL,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create LLM client: %v\n", err)
			os.Exit(1)
		}

		sessions, err := store.NewSQLiteSessionStore(appConfig.SessionDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open session store: %v\n", err)
			os.Exit(1)
		}
		defer sessions.Close()

		brk := broker.NewMemoryBroker()
		defer brk.Close()

		chat := agent.New(client, registry, sessions, brk, log)
		if err := tui.Start(chat, ""); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	},
}

// mcpCmd serves the inventory tools over MCP stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the inventory tools over MCP stdio",
	Long: `Expose search_inventory, get_vehicle_details and compare_vehicles
over the Model Context Protocol on stdin/stdout, for use by external
assistants. No API key is required; the tools run without a model.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Stdout belongs to the protocol.
		log := logger.NewSilentLogger()
		_, registry := mustLoadEngine(log)

		if err := mcp.NewServer(registry).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

// Search flags.
var (
	searchBrand    string
	searchModel    string
	searchConfig   string
	searchCabin    string
	searchGearbox  string
	searchFuel     string
	searchEuro     int
	searchMinPrice float64
	searchMaxPrice float64
	searchMinPower int
	searchMaxPower int
	searchMaxKM    int
	searchMinBeds  int
	searchNew      bool
	searchDamaged  bool
	searchSort     string
	searchLimit    int

	searchDetail  int
	searchCompare []int
)

// searchCmd queries the inventory directly, without a model.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the inventory from the command line",
	Long: `Filter, rank and print inventory records without going through
the assistant. Also shows a single vehicle (--detail) or compares
several (--compare).`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.NewSilentLogger()
		engine, _ := mustLoadEngine(log)

		if searchDetail > 0 {
			record, err := engine.Get(searchDetail)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(record.Detail())
			return
		}

		if len(searchCompare) > 0 {
			comparison, err := engine.Compare(searchCompare)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(comparison.Text())
			return
		}

		spec := specFromFlags(cmd)
		records, err := engine.Search(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}

		if len(records) == 0 {
			fmt.Println("No vehicles match.")
			return
		}

		header := lipgloss.NewStyle().Bold(true)
		fmt.Println(header.Render(fmt.Sprintf("%d vehicle(s):", len(records))))
		fmt.Println()
		for _, r := range records {
			fmt.Println(r.Summary())
		}
	},
}

// specFromFlags builds a filter from the flags the user actually set,
// so unset numerics do not turn into zero-bounds.
func specFromFlags(cmd *cobra.Command) inventory.FilterSpec {
	spec := inventory.FilterSpec{
		IncludeDamaged: searchDamaged,
		SortKey:        inventory.SortKey(searchSort),
		Limit:          searchLimit,
	}

	set := func(name string) bool { return cmd.Flags().Changed(name) }

	if set("brand") {
		spec.Brand = &searchBrand
	}
	if set("model") {
		spec.Model = &searchModel
	}
	if set("config") {
		spec.Configuration = &searchConfig
	}
	if set("cabin") {
		spec.Cabin = &searchCabin
	}
	if set("gearbox") {
		spec.Gearbox = &searchGearbox
	}
	if set("fuel") {
		spec.Fuel = &searchFuel
	}
	if set("euro") {
		spec.EuroNorm = &searchEuro
	}
	if set("min-price") {
		spec.MinPrice = &searchMinPrice
	}
	if set("max-price") {
		spec.MaxPrice = &searchMaxPrice
	}
	if set("min-power") {
		spec.MinPower = &searchMinPower
	}
	if set("max-power") {
		spec.MaxPower = &searchMaxPower
	}
	if set("max-km") {
		spec.MaxMileage = &searchMaxKM
	}
	if set("beds") {
		spec.MinBeds = &searchMinBeds
	}
	if set("new") {
		spec.IsNew = &searchNew
	}
	return spec
}

// statsCmd prints recorded usage from the interaction store.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded chat and tool usage",
	Long: `Query the interaction store for recorded telemetry.

Requires POSTGRES_DSN; stats are only persisted in distributed mode.`,
	Run: func(cmd *cobra.Command, args []string) {
		if appConfig.PostgresDSN == "" {
			fmt.Fprintln(os.Stderr, "ERROR: POSTGRES_DSN environment variable is required for stats")
			os.Exit(1)
		}

		st, err := store.NewPostgresInteractionStore(appConfig.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to Postgres: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		ctx := context.Background()
		turns, err := st.TurnCount(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read turn count: %v\n", err)
			os.Exit(1)
		}
		counts, err := st.ToolCounts(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read tool counts: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Chat turns: %d\n", turns)
		if len(counts) == 0 {
			fmt.Println("No tool calls recorded.")
			return
		}

		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("Tool calls:")
		for _, name := range names {
			fmt.Printf("  %-24s %d\n", name, counts[name])
		}
	},
}

// versionCmd prints the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("truckfinder %s\n", version)
	},
}

// mustLoadEngine loads the inventory CSV and builds the engine and the
// tool registry over it. Exits on a missing or unreadable dataset.
func mustLoadEngine(log logger.Logger) (*inventory.Engine, *tools.Registry) {
	records, err := dataset.Load(appConfig.DataPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load inventory from %s: %v\n", appConfig.DataPath, err)
		os.Exit(1)
	}

	engine := inventory.NewEngine(inventory.NewMemoryStore(records))
	registry := tools.NewRegistry(engine, log)
	return engine, registry
}

// mustOpenTelemetry wires the broker and interaction store for the
// detected mode.
func mustOpenTelemetry(log logger.Logger) (broker.Broker, store.InteractionStore) {
	if appConfig.Mode() == config.LocalMode {
		return broker.NewMemoryBroker(), store.NewMemoryInteractionStore()
	}

	brk, err := broker.NewRedpandaBroker(appConfig.RedpandaBrokers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to Redpanda at %s: %v\n",
			strings.Join(appConfig.RedpandaBrokers, ","), err)
		os.Exit(1)
	}

	st, err := store.NewPostgresInteractionStore(appConfig.PostgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to Postgres: %v\n", err)
		os.Exit(1)
	}
	return brk, st
}

func init() {
	searchCmd.Flags().StringVar(&searchBrand, "brand", "", "exact brand, e.g. DAF")
	searchCmd.Flags().StringVar(&searchModel, "model", "", "model substring, e.g. XF")
	searchCmd.Flags().StringVar(&searchConfig, "config", "", "axle configuration, e.g. 4X2")
	searchCmd.Flags().StringVar(&searchCabin, "cabin", "", "cabin keyword, e.g. SLEEPER")
	searchCmd.Flags().StringVar(&searchGearbox, "gearbox", "", "gearbox: automatic or manual")
	searchCmd.Flags().StringVar(&searchFuel, "fuel", "", "fuel type, e.g. diesel")
	searchCmd.Flags().IntVar(&searchEuro, "euro", 0, "exact euro norm, e.g. 6")
	searchCmd.Flags().Float64Var(&searchMinPrice, "min-price", 0, "minimum price in EUR")
	searchCmd.Flags().Float64Var(&searchMaxPrice, "max-price", 0, "maximum price in EUR")
	searchCmd.Flags().IntVar(&searchMinPower, "min-power", 0, "minimum power in HP")
	searchCmd.Flags().IntVar(&searchMaxPower, "max-power", 0, "maximum power in HP")
	searchCmd.Flags().IntVar(&searchMaxKM, "max-km", 0, "maximum mileage in km")
	searchCmd.Flags().IntVar(&searchMinBeds, "beds", 0, "minimum bed count")
	searchCmd.Flags().BoolVar(&searchNew, "new", false, "only new (or with --new=false, only used) vehicles")
	searchCmd.Flags().BoolVar(&searchDamaged, "include-damaged", false, "keep damaged vehicles in results")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort key: price_ascending, price_descending, mileage_ascending, power_descending")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default 5)")
	searchCmd.Flags().IntVar(&searchDetail, "detail", 0, "show full details for one vehicle id")
	searchCmd.Flags().IntSliceVar(&searchCompare, "compare", nil, "compare vehicle ids, e.g. --compare 271313,271314")

	rootCmd.AddCommand(serveCmd, chatCmd, mcpCmd, searchCmd, statsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
