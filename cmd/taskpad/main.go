package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
	"github.com/sandeepkv93/taskpad/internal/client"
	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/sandeepkv93/taskpad/internal/logging"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/presenter"
	"github.com/sandeepkv93/taskpad/internal/server"
	"github.com/sandeepkv93/taskpad/internal/storage"
	"github.com/sandeepkv93/taskpad/internal/update"
	"github.com/sandeepkv93/taskpad/internal/views"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "taskpad",
	Short:        "taskpad - terminal client for a REST task store",
	SilenceUsage: true,
	RunE:         runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference task store (REST over SQLite)",
	RunE:  runServe,
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Print one page of tasks, newest first",
	RunE:  runLs,
}

type cliFlags struct {
	configPath string
	apiBase    string
	logFile    string
	addr       string
	dbPath     string
	search     string
	page       int
}

var flags cliFlags

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.apiBase, "api-base", "", "task store base URL (default "+config.DefaultAPIBase+")")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "append logs to this file")
	serveCmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default :5000)")
	serveCmd.Flags().StringVar(&flags.dbPath, "db", "", "SQLite database path (default taskpad.db)")
	lsCmd.Flags().StringVar(&flags.search, "search", "", "only tasks whose title or description contains this text")
	lsCmd.Flags().IntVar(&flags.page, "page", 1, "page number")
	rootCmd.AddCommand(serveCmd, lsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, the config file, the environment and then
// command-line flags, in that order.
func loadConfig(f cliFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.apiBase != "" {
		cfg.APIBase = f.apiBase
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.dbPath != "" {
		cfg.Server.DBPath = f.dbPath
	}
	return cfg, nil
}

func newStore(cfg config.Config, log zerolog.Logger) (*client.HTTPStore, error) {
	return client.New(cfg.APIBase,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log.With().Str("component", "client").Logger()),
	)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := newStore(cfg, log)
	if err != nil {
		return err
	}
	log.Info().Str("api_base", store.BaseURL()).Msg("starting taskpad")

	m := update.NewModel(store,
		update.WithLogger(log),
		update.WithDesktopNotifications(cfg.DesktopNotifications, update.ExecDesktopNotifier{}),
	)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("taskpad failed: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	log, closer, err := serverLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	repo, err := storage.OpenSQLite(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	h := server.NewHandler(repo, server.Options{
		Logger:         log,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info().Str("addr", cfg.Server.Addr).Str("db", cfg.Server.DBPath).Msg("task store listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func serverLogger(stderr io.Writer, cfg config.Config) (zerolog.Logger, io.Closer, error) {
	if cfg.LogFile != "" {
		return logging.New(cfg.LogFile, cfg.LogLevel)
	}
	log, err := logging.NewConsole(stderr, cfg.LogLevel)
	return log, io.NopCloser(nil), err
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := newStore(cfg, log)
	if err != nil {
		return err
	}
	return listPage(cmd.Context(), store, flags.search, flags.page, cmd.OutOrStdout())
}

// listPage fetches the collection and prints the requested presenter page.
func listPage(ctx context.Context, store client.Store, search string, page int, w io.Writer) error {
	tasks, err := store.List(ctx, search)
	if err != nil {
		return err
	}
	p := presenter.Paginate(tasks, page, presenter.PageSize)
	if p.Empty() {
		_, err := fmt.Fprintln(w, views.EmptyPlaceholder)
		return err
	}

	t := table.New().Headers("ID", "TITLE", "STATUS", "PRIORITY", "DUE", "CREATED")
	for _, task := range p.Items {
		t.Row(
			strconv.Itoa(task.ID),
			task.Title,
			task.Status.Label(),
			strconv.Itoa(task.Priority),
			model.DisplayDate(task.DueDate),
			model.DisplayDate(task.CreatedAt),
		)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "page %d/%d | %s\n", p.Number, p.TotalPages, views.RenderFooter(p.Total))
	return err
}
