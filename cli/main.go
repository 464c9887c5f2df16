package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytinfo"
	"ytinfo/config"
	"ytinfo/youtube"
)

const prompt = "Paste the channel's url you want to get info from"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level})).
		With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	ctx := context.Background()
	client, err := youtube.NewClient(ctx, cfg.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating client: %v\n", err)
		os.Exit(1)
	}
	client.SetLogger(logger)

	if err := run(ctx, client, cfg.MaxVideos, cfg.RequestTimeout, os.Stdin, os.Stdout); err != nil {
		var apiErr *youtube.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode() != 0 {
			logger.Error("api call failed", "op", apiErr.Op, "status", apiErr.StatusCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run prompts for one channel URL, then prints the channel and its latest
// uploads to out. A channel that cannot be found is reported on out and is
// not an error. timeout bounds the API calls only; zero means no bound.
func run(ctx context.Context, client *youtube.Client, maxVideos int, timeout time.Duration, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, prompt)
	fmt.Fprint(out, ">")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return fmt.Errorf("read channel url: %w", err)
	}

	ref, err := youtube.ParseChannelURL(strings.TrimSpace(line))
	if err != nil {
		return err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	info, err := client.ResolveChannel(ctx, ref)
	if err != nil {
		if ytinfo.IsNotFound(err) {
			fmt.Fprintln(out, err.Error())
			return nil
		}
		return err
	}

	printChannel(out, info)

	videos, err := client.ListLatestVideos(ctx, info.UploadsPlaylistID, maxVideos)
	if err != nil {
		return err
	}

	printVideos(out, videos)
	return nil
}

func printChannel(w io.Writer, info *youtube.ChannelInfo) {
	fmt.Fprintln(w, "\nChannel Information:")
	fields := []struct{ key, value string }{
		{"Channel ID", info.ChannelID},
		{"Title", info.Title},
		{"Description", info.Description},
		{"Published At", info.PublishedAt},
		{"Subscribers", info.SubscriberCount},
		{"Views", info.ViewCount},
		{"Video Count", info.VideoCount},
		{"Uploads Playlist ID", info.UploadsPlaylistID},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f.key, f.value)
	}
}

func printVideos(w io.Writer, videos []youtube.VideoSummary) {
	fmt.Fprintln(w, "\nLatest Videos:")
	for _, v := range videos {
		fmt.Fprintf(w, "- %s (%s)\n  %s\n", v.Title, v.PublishedAt, v.URL)
	}
}
