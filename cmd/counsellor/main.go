package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"counsellor/internal/catalog"
	"counsellor/internal/config"
	"counsellor/internal/conversation"
	"counsellor/internal/dataset"
	"counsellor/internal/domain"
	"counsellor/internal/enrich"
	"counsellor/internal/jobmarket/adzuna"
	"counsellor/internal/logging"
	"counsellor/internal/marketcache"
	"counsellor/internal/marketcache/memory"
	"counsellor/internal/marketcache/redis"
	"counsellor/internal/session"
	"counsellor/internal/textnorm"
	"counsellor/internal/translate/google"
	"counsellor/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var plain bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/counsellor/config.yaml if not provided)")
	flag.BoolVar(&plain, "plain", false, "Line-oriented chat on stdin/stdout instead of the TUI")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logOut io.Writer = os.Stderr
	if !plain {
		path := cfg.Log.File
		if path == "" {
			dir, err := config.UserDir()
			if err != nil {
				log.Fatalf("resolve log dir: %v", err)
			}
			path = filepath.Join(dir, "counsellor.log")
		}
		f, err := logging.OpenFile(path)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.New(logOut, cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx := context.Background()

	// Assemble components
	normOpts := []textnorm.Option{textnorm.WithAccentFolding(cfg.Normalizer.FoldAccents)}
	switch cfg.Normalizer.Reducer {
	case "snowball", "":
	case "none":
		normOpts = append(normOpts, textnorm.WithReducer(func(s string) string { return s }))
	default:
		logger.Fatalf("unknown reducer: %s", cfg.Normalizer.Reducer)
	}
	norm := textnorm.New(normOpts...)

	var src dataset.Source
	switch cfg.Dataset.Type {
	case "embedded", "":
		src = dataset.NewEmbedded()
	case "csv":
		src = dataset.NewCSVFile(cfg.Dataset.Path)
	case "sqlite":
		db, err := dataset.OpenSQLite(cfg.Dataset.Path)
		if err != nil {
			logger.Fatalf("open dataset db: %v", err)
		}
		defer db.Close()
		if src, err = dataset.NewSQLSource(db, cfg.Dataset.Table); err != nil {
			logger.Fatalf("dataset source: %v", err)
		}
	default:
		logger.Fatalf("unknown dataset type: %s", cfg.Dataset.Type)
	}
	categories, err := dataset.Load(ctx, src, norm)
	if err != nil {
		logger.Fatalf("load dataset: %v", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	var tr domain.Translator
	trTimeout := 5 * time.Second
	switch cfg.Translator.Type {
	case "none", "":
	case "google":
		g := cfg.Translator.Google
		trTimeout = time.Duration(g.TimeoutSecs) * time.Second
		tr = google.NewClient(google.Config{
			BaseURL:    g.BaseURL,
			MaxRetries: g.MaxRetries,
			Timeout:    time.Duration(g.TimeoutSecs) * time.Second,
		})
	default:
		logger.Fatalf("unknown translator: %s", cfg.Translator.Type)
	}

	var market domain.JobMarket
	country := ""
	switch cfg.JobMarket.Type {
	case "none", "":
	case "adzuna":
		a := cfg.JobMarket.Adzuna
		client, err := adzuna.NewClient(adzuna.Config{
			BaseURL:        a.BaseURL,
			AppIDEnv:       a.AppIDEnv,
			AppKeyEnv:      a.AppKeyEnv,
			Country:        a.Country,
			ResultsPerPage: a.ResultsPerPage,
			MaxRetries:     a.MaxRetries,
			Timeout:        time.Duration(a.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Warn("job market disabled", "err", err)
		} else {
			market = client
			country = client.Country()
		}
	default:
		logger.Fatalf("unknown job market: %s", cfg.JobMarket.Type)
	}

	ttl := time.Duration(cfg.Cache.TTLSecs) * time.Second
	var cache marketcache.Storage
	switch cfg.Cache.Type {
	case "none", "":
	case "memory":
		cache = memory.NewStorage(ttl)
	case "redis":
		r := cfg.Cache.Redis
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		st, err := redis.NewStorage(pingCtx, redis.Config{
			Addr:     r.Addr,
			Password: os.Getenv(r.PasswordEnv),
			DB:       r.DB,
			Prefix:   r.Prefix,
			TTL:      ttl,
		})
		cancel()
		if err != nil {
			logger.Warn("redis cache unavailable, using memory", "err", err)
			cache = memory.NewStorage(ttl)
		} else {
			defer st.Close()
			cache = st
		}
	default:
		logger.Fatalf("unknown cache: %s", cfg.Cache.Type)
	}

	enrichOpts := []enrich.Option{enrich.WithLogger(logger)}
	if cache != nil {
		enrichOpts = append(enrichOpts, enrich.WithCache(cache, country))
	}
	enricher := enrich.New(market, cat, enrichOpts...)

	convOpts := []conversation.Option{conversation.WithLogger(logger)}
	if tr != nil {
		convOpts = append(convOpts, conversation.WithTranslator(tr, cfg.Translator.Source, cfg.Translator.Target, trTimeout))
	}
	if cfg.Session.TraitLearning {
		convOpts = append(convOpts, conversation.WithTraitLearning(cfg.Session.TraitWeight))
	}
	svc := conversation.NewCounsellor(norm, categories, cat, enricher, convOpts...)

	greeting := cfg.Session.Greeting
	if greeting == "" {
		greeting = session.Greeting
	}
	st := session.New(greeting)
	logger.Info("session started", "session", st.ID, "categories", len(categories))

	if plain {
		runPlain(ctx, svc, st, os.Stdin, os.Stdout)
		return
	}
	if _, err := tea.NewProgram(tui.New(svc, st), tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal(err)
	}
}

// runPlain is a line-oriented chat loop for terminals without TUI support.
func runPlain(ctx context.Context, svc domain.CounsellorService, st *domain.SessionState, in io.Reader, out io.Writer) {
	for _, m := range st.History {
		fmt.Fprintln(out, m.Text)
	}
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		fmt.Fprintln(out, svc.Respond(ctx, st, line))
	}
}
