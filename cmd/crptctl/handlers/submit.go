package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/concave-dev/crpt/cmd/crptctl/display"
	"github.com/concave-dev/crpt/cmd/crptctl/utils"
	"github.com/concave-dev/crpt/internal/crpt"
	"github.com/concave-dev/crpt/internal/document"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// HandleSubmit submits the sample or file document Submit.Count times from
// Submit.Concurrency goroutines and prints every result
func HandleSubmit(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if err := config.ValidateSubmitFlags(); err != nil {
		return err
	}

	doc, err := loadDocument()
	if err != nil {
		return err
	}

	submitter, cleanup, err := newSubmitter()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("Submitting %d document(s) to %s with %d goroutine(s), min interval %v",
		config.Submit.Count, config.Global.Endpoint, config.Submit.Concurrency, submitter.MinInterval())

	started := time.Now()
	submissions := SubmitAll(ctx, submitter, doc, config.Global.Signature,
		config.Submit.Count, config.Submit.Concurrency)
	logging.Debug("Submissions finished in %v", time.Since(started))

	display.DisplaySubmissions(os.Stdout, submissions)

	failed := lo.CountBy(submissions, func(s display.Submission) bool { return !s.Result.OK() })
	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(submissions))
	}
	return nil
}

// DocumentSubmitter is the part of crpt.Submitter used by SubmitAll
type DocumentSubmitter interface {
	Submit(ctx context.Context, doc any, signature string) crpt.Result
}

// SubmitAll submits doc count times from concurrency goroutines. Results are
// returned in submission index order.
func SubmitAll(ctx context.Context, s DocumentSubmitter, doc any, signature string, count, concurrency int) []display.Submission {
	submissions := make([]display.Submission, count)
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(concurrency, count); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				submissions[i] = display.Submission{
					Index:  i + 1,
					Result: s.Submit(ctx, doc, signature),
				}
			}
		}()
	}

	for i := 0; i < count; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return submissions
}

// loadDocument reads Submit.File or builds today's sample document
func loadDocument() (*document.Document, error) {
	if config.Submit.File == "" {
		logging.Debug("No document file given, using sample document")
		return document.Sample(time.Now()), nil
	}

	doc, err := document.Load(config.Submit.File)
	if err != nil {
		logging.Error("Failed to load document %s: %v", config.Submit.File, err)
		return nil, err
	}
	return doc, nil
}

// newSubmitter builds the throttled submitter from the global flags, with the
// Redis shared limiter when --redis-addr is set
func newSubmitter() (*crpt.Submitter, func(), error) {
	rate, err := throttle.NewRate(config.Global.Window, config.Global.RequestLimit)
	if err != nil {
		return nil, nil, err
	}

	cfg := &crpt.Config{
		Endpoint:        config.Global.Endpoint,
		Rate:            rate,
		Timeout:         config.Global.Timeout,
		SignatureHeader: config.Global.SignatureHeader,
		RetryCount:      config.Global.Retries,
		UserAgent:       fmt.Sprintf("crptctl/%s", config.Version),
	}

	cleanup := func() {}
	var opts []throttle.Option

	if config.Global.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.Global.RedisAddr})
		cleanup = func() {
			if err := client.Close(); err != nil {
				logging.Warn("Failed to close redis client: %v", err)
			}
		}

		limiter, err := throttle.NewRedisLimiter(client, config.Global.RedisKey, rate)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, throttle.WithLimiter(limiter))
		logging.Info("Sharing submission rate through redis at %s", config.Global.RedisAddr)
	}

	submitter, err := crpt.NewSubmitter(cfg, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return submitter, cleanup, nil
}
