package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/analytics"
	"github.com/abhisek/studyplan/internal/config"
	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/schedule"
	"github.com/abhisek/studyplan/internal/server"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/abhisek/studyplan/internal/tips"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
}

// runServer loads configuration, wires the services, and serves until
// interrupted.
func runServer(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg := config.FromEnv()
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("mongo-uri"); v != "" {
		cfg.MongoURI = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var (
		ds       server.Datastore
		recorder llm.EventRecorder
	)
	if cfg.MongoURI == "" {
		log.Println("no MongoDB URI configured, using in-memory store")
		ds = store.NewMemory()
	} else {
		st, err := store.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := st.Close(closeCtx); err != nil {
				log.Printf("close store: %v", err)
			}
		}()
		ds = st
		recorder = st.LLMEvents()
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Schedule generation will use the rule-based planner only.")
		provider = nil
	} else if recorder != nil {
		provider = llm.WithLogging(provider, recorder, "studyplan")
	}

	gen := schedule.NewGenerator(provider, cfg.Policy, cfg.LLM.Timeout, cfg.LLM.MaxTokens, cfg.LLM.Temperature)
	analyticsRecorder := analytics.NewRecorder(ds.Analytics())
	scheduleSvc := schedule.NewService(ds.Tasks(), ds.Classes(), ds.Exams(), ds.Slots(), ds.Preferences(), gen, analyticsRecorder)
	tipsGen := tips.NewGenerator(provider, cfg.LLM.Timeout)
	insights := analytics.NewInsightsGenerator(provider, cfg.LLM.Timeout)
	analyticsSvc := analytics.NewService(ds.Tasks(), ds.Slots(), ds.Analytics(), insights)

	srv := server.New(ds, server.NewTokenManager(cfg.JWTSecret), scheduleSvc, tipsGen, analyticsSvc, analyticsRecorder)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-stop:
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
