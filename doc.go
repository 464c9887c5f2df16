// Package ytinfo looks up YouTube channels and their latest uploads through
// the YouTube Data API v3.
//
// Overview
//
// A lookup takes three steps, each one API round trip:
//
//   - ParseChannelURL: turn a channel URL into a typed reference
//   - ResolveChannel: fetch channel metadata and statistics
//   - ListLatestVideos: fetch the newest items of the channel's uploads playlist
//
// Custom URLs (/c/<name>) have no direct lookup; they are resolved through a
// one-result channel search, which costs one extra round trip and is a
// relevance match rather than an exact one.
//
// Quick Start
//
//	ctx := context.Background()
//	client, err := youtube.NewClient(ctx, apiKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	ref, err := youtube.ParseChannelURL("https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw")
//	if err != nil {
//		log.Fatal(err)
//	}
//	info, err := client.ResolveChannel(ctx, ref)
//	if errors.Is(err, ytinfo.ErrChannelNotFound) {
//		fmt.Println(err)
//		return
//	}
//	if err != nil {
//		log.Fatal(err)
//	}
//	videos, err := client.ListLatestVideos(ctx, info.UploadsPlaylistID, 5)
//
// Configuration
//
// The ytinfo command loads settings from, in order of priority:
//
//   1. Environment variables
//   2. Config file (ytinfo.json or ~/.config/ytinfo/ytinfo.json)
//   3. Default values
//
// Environment variables:
//
//   - YTINFO_API_KEY: YouTube Data API v3 key (required)
//   - YTINFO_MAX_VIDEOS: Number of latest uploads to list (default 5)
//   - YTINFO_REQUEST_TIMEOUT: Timeout for the whole run (default 30s)
//   - YTINFO_LOG_LEVEL: debug, info, warn or error (default warn)
//
// Error Handling
//
// Channels that do not exist are reported with ErrChannelNotFound, which is an
// expected outcome; failed API calls (network, rejected key, quota) are
// reported with *APIError:
//
//	var apiErr *ytinfo.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed with status %d\n", apiErr.Op, apiErr.StatusCode())
//	}
package ytinfo
