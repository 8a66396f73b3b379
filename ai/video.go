package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrVideoTimeout is returned when a video job outlives Poller.Max.
var ErrVideoTimeout = errors.New("ai: video generation timed out")

// VideoJob is a long-running generation. Poll reports whether the job is
// finished and, once it is, the download URI.
type VideoJob interface {
	Poll(ctx context.Context) (done bool, uri string, err error)
}

// Poller waits on a VideoJob.
type Poller struct {
	Interval time.Duration
	Max      time.Duration
	Progress func(string)
}

var pollMessages = []string{
	"Still working on it... Veo is creating your masterpiece.",
	"Adding the finishing touches...",
	"Rendering the final frames...",
}

// Wait polls job every Interval until it finishes. It gives up when ctx is
// done or Max has passed.
func (p Poller) Wait(ctx context.Context, job VideoJob) (string, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if p.Max > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Max)
		defer cancel()
	}
	report := func(s string) {
		if p.Progress != nil {
			p.Progress(s)
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		done, uri, err := job.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return "", waitErr(ctx)
			}
			return "", fmt.Errorf("%w: video: %v", ErrNoContent, err)
		}
		if done {
			if uri == "" {
				return "", fmt.Errorf("%w: video: finished without a download link", ErrNoContent)
			}
			report("Video ready.")
			return uri, nil
		}
		report(pollMessages[i%len(pollMessages)])

		select {
		case <-ctx.Done():
			return "", waitErr(ctx)
		case <-ticker.C:
		}
	}
}

func waitErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrVideoTimeout
	}
	return ctx.Err()
}

// DownloadVideo fetches a generated video. The API key is sent as the key
// query parameter.
func DownloadVideo(ctx context.Context, client *http.Client, uri, apiKey string, w io.Writer) (int64, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return 0, fmt.Errorf("ai: video uri: %w", err)
	}
	if apiKey != "" {
		q := u.Query()
		q.Set("key", apiKey)
		u.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ai: download video: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ai: download video: %s", resp.Status)
	}
	return io.Copy(w, resp.Body)
}
