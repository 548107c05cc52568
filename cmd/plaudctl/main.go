package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grigofil/plaudctl/internal/bootstrap"
	"github.com/grigofil/plaudctl/internal/config"
	"github.com/grigofil/plaudctl/internal/core/domain"
	"github.com/grigofil/plaudctl/internal/infrastructure/normalize"
)

const usage = `usage: plaudctl <command> [flags]

commands:
  login       -u <user> -p <password>        obtain an access token
  transcribe  [-language ru] [-segments] <file>
              [-resume <job-id>]             continue a stopped poll
  status      <job-id>                       one status check
  result      [-segments] <job-id>           fetch and render a result
  history     [-refresh]                     list past jobs
  delete      [-server] <job-id>             remove a job from history
  sweep                                      remove orphaned staged files
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, cfg, os.Args[2:])
	case "transcribe":
		err = runTranscribe(ctx, cfg, os.Args[2:])
	case "status":
		err = runStatus(ctx, cfg, os.Args[2:])
	case "result":
		err = runResult(ctx, cfg, os.Args[2:])
	case "history":
		err = runHistory(ctx, cfg, os.Args[2:])
	case "delete":
		err = runDelete(ctx, cfg, os.Args[2:])
	case "sweep":
		err = runSweep(cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("plaudctl %s: %v", os.Args[1], err)
	}
}

func runLogin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)

	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		return err
	}

	session, err := app.API.Login(ctx, cfg.ServerURL, *user, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", session.Username)
	fmt.Printf("export PLAUD_TOKEN=%s\n", session.AccessToken)
	return nil
}

func runTranscribe(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("transcribe", flag.ExitOnError)
	language := fs.String("language", cfg.Language, "target language")
	resume := fs.String("resume", "", "continue polling an existing job id")
	segments := fs.Bool("segments", false, "print timed segments")
	_ = fs.Parse(args)

	observer := func(t domain.Transition) {
		switch t.State {
		case domain.PollStateSubmitting:
			fmt.Printf("uploading %s\n", t.Job.FileName)
		case domain.PollStatePolling:
			fmt.Printf("status: %s\n", t.RawStatus)
		case domain.PollStateDone:
			fmt.Printf("job %s done\n", t.Job.JobID)
		case domain.PollStateFailed:
			fmt.Fprintf(os.Stderr, "job failed: %s\n", t.Job.ErrorMessage)
		}
	}

	app, err := bootstrap.New(cfg, observer)
	if err != nil {
		return err
	}
	serveMetrics(app)

	if _, err := app.Staging.Sweep(); err != nil {
		app.Logger.Warn("staging_sweep_failed", "error", err)
	}

	var outcome *domain.TranscribeOutcome
	if *resume != "" {
		job := domain.Job{
			JobID:     *resume,
			Status:    domain.StatusProcessing,
			CreatedAt: time.Now().UTC(),
		}
		outcome, err = app.Transcriber.Resume(ctx, job, cfg.AuthContext())
	} else {
		if fs.NArg() != 1 {
			return fmt.Errorf("expected exactly one audio file argument")
		}
		outcome, err = app.Transcriber.Run(ctx, fs.Arg(0), cfg.AuthContext(), *language)
	}
	if err != nil {
		return err
	}

	printResult(outcome.Result, *segments)
	return nil
}

func runStatus(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one job id argument")
	}
	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		return err
	}
	raw, err := app.API.FetchStatus(ctx, cfg.AuthContext(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(raw)
	return nil
}

func runResult(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("result", flag.ExitOnError)
	segments := fs.Bool("segments", false, "print timed segments")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one job id argument")
	}

	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		return err
	}
	body, err := app.API.FetchResult(ctx, cfg.AuthContext(), fs.Arg(0))
	if err != nil {
		return err
	}

	printResult(normalize.NewNormalizer().Normalize(body), *segments)
	return nil
}

func runHistory(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "reload the list from the server")
	_ = fs.Parse(args)

	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		return err
	}
	if *refresh {
		if err := app.History.Refresh(ctx, cfg.AuthContext()); err != nil {
			return err
		}
	}

	entries := app.History.List()
	if len(entries) == 0 {
		fmt.Println("history is empty")
		return nil
	}
	for _, e := range entries {
		created := ""
		if !e.CreatedAt.IsZero() {
			created = e.CreatedAt.Format(time.RFC3339)
		}
		fmt.Printf("%s  %-28s  %-12s  %s\n", e.JobID, e.FileName, e.Status, created)
	}
	return nil
}

func runDelete(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	server := fs.Bool("server", false, "also delete on the server")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one job id argument")
	}

	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		return err
	}
	return app.History.Delete(ctx, fs.Arg(0), cfg.AuthContext(), *server)
}

func runSweep(cfg config.Config) error {
	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		return err
	}
	removed, err := app.Staging.Sweep()
	if err != nil {
		return err
	}
	fmt.Printf("removed %d staged file(s)\n", removed)
	return nil
}

func printResult(result domain.TranscriptionResult, withSegments bool) {
	text := normalize.DisplayText(result)
	if text == "" {
		text = normalize.PlaceholderTranscript
	}
	fmt.Println(text)
	if withSegments {
		fmt.Println()
		fmt.Println(normalize.SegmentsText(result))
	}
}

func serveMetrics(app *bootstrap.App) {
	if app.Config.MetricsPort == "" {
		return
	}
	go func() {
		addr := ":" + app.Config.MetricsPort
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			app.Logger.Warn("metrics_listener_stopped", "error", err)
		}
	}()
}
