package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"booktracker/internal/client"
	"booktracker/internal/config"
	"booktracker/internal/entity"
	"booktracker/internal/logging"

	"github.com/sirupsen/logrus"
)

const usage = `usage: booktracker [flags] <command> [args]

commands:
  me                                      current user
  users                                   all users
  user <id>                               one user
  friends <id>                            the user's friends
  books <id>                              the user's books with catalog fields
  set-status <userId> <bookId> <status>   status is one of read, reading, want-to-read`

var errUsage = errors.New(usage)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.WithError(err).Error("booktracker failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("booktracker", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprintln(fs.Output(), usage) }
	baseURL := fs.String("base-url", cfg.Client.BaseURL, "book tracker API base URL")
	noValidate := fs.Bool("no-validate", !cfg.Client.ValidateResponses, "skip schema validation of responses")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	c := client.New(*baseURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
		client.WithUserAgent(cfg.Client.UserAgent),
		client.WithResponseValidation(!*noValidate),
		client.WithRateLimit(cfg.Client.RateLimitRPS, 1),
		client.WithLogger(log),
	)

	result, err := dispatch(ctx, c, fs.Args())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func dispatch(ctx context.Context, c *client.Client, args []string) (any, error) {
	cmd, params := args[0], args[1:]
	switch cmd {
	case "me":
		if err := expectArgs(cmd, params, 0); err != nil {
			return nil, err
		}
		return c.FetchCurrentUser(ctx)
	case "users":
		if err := expectArgs(cmd, params, 0); err != nil {
			return nil, err
		}
		return c.FetchUsers(ctx)
	case "user":
		if err := expectArgs(cmd, params, 1); err != nil {
			return nil, err
		}
		return c.FetchUser(ctx, params[0])
	case "friends":
		if err := expectArgs(cmd, params, 1); err != nil {
			return nil, err
		}
		return c.FetchFriends(ctx, params[0])
	case "books":
		if err := expectArgs(cmd, params, 1); err != nil {
			return nil, err
		}
		return c.FetchUserBooks(ctx, params[0])
	case "set-status":
		if err := expectArgs(cmd, params, 3); err != nil {
			return nil, err
		}
		status, err := entity.ParseStatus(params[2])
		if err != nil {
			return nil, err
		}
		return c.UpdateUserBookStatus(ctx, entity.UpdateUserBookStatusRequest{
			UserID: params[0],
			BookID: params[1],
			Status: status,
		})
	default:
		return nil, fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func expectArgs(cmd string, params []string, n int) error {
	if len(params) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", cmd, n, len(params))
	}
	return nil
}
