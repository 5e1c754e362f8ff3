package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"turing_judge/config"
	"turing_judge/console"
	"turing_judge/generator"
	"turing_judge/server"
	"turing_judge/session"
)

func main() {
	configPath := flag.String("config", "", "path to optional config.json")
	serve := flag.Bool("serve", false, "start web server instead of the terminal session")
	addr := flag.String("addr", "", "http listen address when --serve (overrides server_addr)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel, *verbose, *serve)

	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings := generator.LLMSettings{Provider: cfg.LLM.Provider, Model: cfg.LLM.Model}
	client, err := generator.NewClient(llm, settings, generator.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	agent, err := generator.NewAgent(client)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctrl, err := session.NewController(agent, validator.New(validator.WithRequiredStructEnabled()), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Web server mode
	if *serve {
		srv, err := server.New(ctrl, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if err := runServer(ctx, listen, srv.Routes(), logger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := console.New(ctrl, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, listen string, handler http.Handler, logger zerolog.Logger) error {
	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", listen).Msg("starting web server")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newLogger writes JSON to stdout in server mode; the terminal session keeps
// stdout for the conversation and logs to stderr.
func newLogger(level string, verbose, serve bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	if serve {
		return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	}
	if !verbose {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func buildLLM(cfg config.LLMConfig) (generator.Backend, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	}
	switch cfg.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "gemini":
		// Gemini 提供 OpenAI 兼容接口，未配置 base_url 时使用官方地址。
		if settings.BaseURL == "" {
			settings.BaseURL = generator.GeminiOpenAIBaseURL
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "azure":
		return generator.NewAzureLLMFromConfig(settings)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
