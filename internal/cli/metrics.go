package cli

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/plus3/blockfall/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// MetricsServer owns the registry a command reports into and, when an
// address was given, the HTTP listener exposing it.
type MetricsServer struct {
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	ln  net.Listener
	srv *http.Server
}

// StartMetrics builds the game collectors plus the Go runtime ones. With a
// non-empty addr it serves /metrics in the background.
func StartMetrics(addr string) (*MetricsServer, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}
	s := &MetricsServer{Metrics: m, Registry: reg}
	if addr == "" {
		return s, nil
	}

	s.ln, err = net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	s.srv = &http.Server{Handler: mux}

	go func() {
		if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	log.Printf("serving metrics on http://%s/metrics", s.ln.Addr())
	return s, nil
}

// Addr is the bound listener address, or "" when not serving.
func (s *MetricsServer) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

func (s *MetricsServer) Close(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
