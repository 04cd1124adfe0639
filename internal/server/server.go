package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

// feedItem is one published feed with its HTTP cache metadata.
type feedItem struct {
	data    []byte
	etag    string
	modTime time.Time
}

// FeedServer publishes the birthday feed on localhost so calendar apps can subscribe.
type FeedServer struct {
	// Reads vastly outnumber publishes, so the feed is swapped atomically
	// instead of guarding it with a lock.
	feed atomic.Pointer[feedItem]
	addr atomic.Pointer[string]

	Port    string
	Builder *engine.FeedBuilder
}

// NewFeedServer creates a server for the given port.
func NewFeedServer(port string, builder *engine.FeedBuilder) *FeedServer {
	return &FeedServer{
		Port:    port,
		Builder: builder,
	}
}

// Handler returns the HTTP routes of the server.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.handleFeed)
	return mux
}

// Addr returns the bound address once Start is listening, or "".
func (s *FeedServer) Addr() string {
	if a := s.addr.Load(); a != nil {
		return *a
	}
	return ""
}

// Start binds the port and serves until ctx is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	port := s.Port
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}

	ln, err := net.Listen("tcp", config.LocalhostBindAddr+config.AddrSeparator+port)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	addr := ln.Addr().String()
	bound := &addr
	s.addr.Store(bound)
	// A restarted server may already have stored its own address.
	defer s.addr.CompareAndSwap(bound, nil)

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, port,
			config.LogKeyURL, "http://"+addr+config.RouteFeed,
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish renders people with the Builder and serves the result.
func (s *FeedServer) Publish(people []engine.Person) (engine.FeedStats, error) {
	data, stats, err := s.Builder.Build(people)
	if err != nil {
		return stats, err
	}
	s.Update(data)
	return stats, nil
}

// Update atomically replaces the served feed.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	item := &feedItem{
		data:    data,
		etag:    fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		modTime: time.Now().UTC().Truncate(time.Second),
	}

	// Readers see either the old or the new item, never a mix.
	s.feed.Store(item)

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// handleFeed serves the feed. Conditional requests (If-None-Match,
// If-Modified-Since) are answered by http.ServeContent.
func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.feed.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)

	http.ServeContent(w, r, "", item.modTime, bytes.NewReader(item.data))
}
