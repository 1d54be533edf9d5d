// Command editprobe-watch attaches to a page hosting a code editor and
// continuously prints which document lines are visible, with the current
// scroll offset. It is a development aid for tuning selectors and watching
// virtualization behavior while interacting with the page by hand.
//
// Configuration comes from EDITPROBE_* environment variables (optionally via
// a .env file) with flag overrides.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chromedp/chromedp"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/editprobe/editprobe/chromedriver"
	"github.com/editprobe/editprobe/editor"
)

type settings struct {
	URL      string        `envconfig:"URL"`
	Interval time.Duration `envconfig:"INTERVAL" default:"500ms"`
	Gutter   string        `envconfig:"GUTTER_SELECTOR"`
	Line     string        `envconfig:"LINE_SELECTOR"`
	Scroller string        `envconfig:"SCROLLER_SELECTOR"`
	Headless bool          `envconfig:"HEADLESS"`
	Debug    bool          `envconfig:"DEBUG"`
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; explicit env always wins.
	_ = godotenv.Load()

	var cfg settings
	if err := envconfig.Process("editprobe", &cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	flag.StringVar(&cfg.URL, "url", cfg.URL, "page URL to attach to")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "sampling interval")
	flag.StringVar(&cfg.Gutter, "gutter", cfg.Gutter, "gutter annotation selector (default: Monaco)")
	flag.StringVar(&cfg.Line, "line", cfg.Line, "content line selector (default: Monaco)")
	flag.StringVar(&cfg.Scroller, "scroller", cfg.Scroller, "scroll container selector (default: Monaco)")
	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run the browser headless")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	flag.Parse()

	if cfg.URL == "" {
		return fmt.Errorf("a page URL is required (-url or EDITPROBE_URL)")
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if cfg.Debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	allocOpts := chromedp.DefaultExecAllocatorOptions[:]
	if !cfg.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	log.Info().Str("url", cfg.URL).Msg("navigating")
	if err := chromedp.Run(browserCtx, chromedp.Navigate(cfg.URL)); err != nil {
		return fmt.Errorf("failed to open %s: %w", cfg.URL, err)
	}

	surface, err := chromedriver.New(chromedriver.WithLogger(log))
	if err != nil {
		return err
	}

	profile := editor.DefaultProfile()
	if cfg.Gutter != "" {
		profile.Gutter = cfg.Gutter
	}
	if cfg.Line != "" {
		profile.Line = cfg.Line
	}
	if cfg.Scroller != "" {
		profile.Scroller = cfg.Scroller
	}
	ed, err := editor.New(surface, editor.WithProfile(profile), editor.WithLogger(log))
	if err != nil {
		return err
	}

	return watch(browserCtx, ed, cfg.Interval, log)
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	rangeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func watch(ctx context.Context, ed *editor.Editor, interval time.Duration, log zerolog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fmt.Println(headerStyle.Render("editprobe-watch — ctrl-c to stop"))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		v, err := ed.LinesInViewport(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("viewport query failed")
			continue
		}
		pos, err := ed.ScrollPosition(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("scroll query failed")
			continue
		}

		fmt.Printf("%s %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("scrollTop=%7.1f", pos.Top)),
			rangeStyle.Render("full "+formatRanges(v.Fully)),
			partialStyle.Render("partial "+formatRanges(v.Partially)),
			dimStyle.Render(time.Now().Format("15:04:05")),
		)
	}
}

func formatRanges(rs []editor.LineRange) string {
	if len(rs) == 0 {
		return "-"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		if r.First == r.Last {
			parts[i] = fmt.Sprintf("%d", r.First)
		} else {
			parts[i] = fmt.Sprintf("%d-%d", r.First, r.Last)
		}
	}
	return strings.Join(parts, ",")
}
