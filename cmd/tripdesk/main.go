package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/naveenspark/tripdesk/internal/config"
	"github.com/naveenspark/tripdesk/internal/logger"
	"github.com/naveenspark/tripdesk/internal/metrics"
	"github.com/naveenspark/tripdesk/internal/session"
	"github.com/naveenspark/tripdesk/internal/tui"
	"github.com/naveenspark/tripdesk/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(out, "tripdesk "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	case "", "login", "logout", "signup", "status":
	default:
		return fmt.Errorf("unknown command %q, see: tripdesk help", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, closeLog := logger.SetupDefault(cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	d := newDesk(cfg, log)
	defer d.close()

	ctx := context.Background()
	switch cmd {
	case "logout":
		return runLogout(d, out)
	case "status":
		return runStatus(ctx, d, out)
	case "login":
		return runTUI(ctx, d, tui.StartSignIn)
	case "signup":
		return runTUI(ctx, d, tui.StartSignUp)
	}
	return runTUI(ctx, d, tui.StartHome)
}

// desk wires the client, the session and the metrics together.
type desk struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Collector
	store   *session.FileStore
	session *session.Manager
	client  *client.Client
	detach  func()
}

func newDesk(cfg *config.Config, log *slog.Logger) *desk {
	m := metrics.NewCollector()
	store := session.NewFileStore(cfg.StateDir)
	mgr := session.NewManager(store, log)

	opts := []client.Option{
		client.WithTransport(m.InstrumentRoundTripper(http.DefaultTransport)),
		client.WithLogger(log),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, client.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)))
	}
	c := client.New(cfg.APIURL, mgr, opts...)
	mgr.Attach(c)

	return &desk{
		cfg:     cfg,
		log:     log,
		metrics: m,
		store:   store,
		session: mgr,
		client:  c,
		detach:  c.OnSessionExpired(m.RecordSessionExpired),
	}
}

func (d *desk) close() {
	d.detach()
	d.session.Close()
	if d.cfg.MetricsFile == "" {
		return
	}
	if err := d.metrics.WriteFile(d.cfg.MetricsFile); err != nil {
		d.log.Warn("write metrics", slog.String("path", d.cfg.MetricsFile), slog.String("error", err.Error()))
	}
}

// restore validates the stored session. A rejected or unreachable session
// leaves the user signed out.
func (d *desk) restore(ctx context.Context) {
	if err := d.session.Init(ctx); err != nil {
		d.log.Info("restore session", slog.String("error", err.Error()))
	}
}

func runTUI(ctx context.Context, d *desk, start tui.Start) error {
	d.restore(ctx)

	app := tui.NewApp(d.client, d.session).StartAt(start)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout(d *desk, out io.Writer) error {
	stored, err := d.store.Load()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if stored.Token == "" {
		fmt.Fprintln(out, "Already signed out.")
		return nil
	}
	if err := d.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out.")
	return nil
}

func runStatus(ctx context.Context, d *desk, out io.Writer) error {
	d.restore(ctx)
	if !d.session.Authenticated() {
		printGuestGreeting(out)
		return nil
	}
	exp, hasExp := d.session.TokenExpiry()
	printStatus(out, statusInfo{
		APIURL:    d.client.BaseURL(),
		UserID:    d.session.UserID(),
		Expiry:    exp,
		HasExpiry: hasExp,
	})
	return nil
}
