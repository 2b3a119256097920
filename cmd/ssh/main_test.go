package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestShutdownFeedLogsFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	inHandler := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(inHandler)
		<-release
	})}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()
	defer close(release)

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err == nil {
			resp.Body.Close()
		}
	}()
	<-inHandler

	// An expired deadline with a request still in flight makes Shutdown fail.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	shutdownFeed(ctx, srv, log.New(&buf))
	if !strings.Contains(buf.String(), "spectator feed shutdown") {
		t.Fatalf("log = %q, want the shutdown failure", buf.String())
	}
}

func TestShutdownFeedWithoutFeed(t *testing.T) {
	var buf bytes.Buffer
	shutdownFeed(context.Background(), nil, log.New(&buf))
	if buf.Len() != 0 {
		t.Fatalf("log = %q, want nothing", buf.String())
	}
}
