package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_generator_requests_total",
		Help: "Requests sent to the orders API",
	}, []string{"operation", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traffic_generator_request_duration_seconds",
		Help:    "Orders API latency seen by the generator",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"operation"})
)

var lifecycle = []string{"preparing", "out-for-delivery", "delivered"}

type order struct {
	ID           string           `json:"id,omitempty"`
	DeliverTo    string           `json:"deliverTo"`
	MobileNumber string           `json:"mobileNumber"`
	Status       string           `json:"status,omitempty"`
	Dishes       []map[string]any `json:"dishes"`
}

type envelope struct {
	Data order `json:"data"`
}

type client struct {
	base string
	http *http.Client
}

func main() {
	target := flag.String("target", "http://localhost:8080", "orders API base URL")
	interval := flag.Duration("interval", 500*time.Millisecond, "pause between order lifecycles")
	metricsAddr := flag.String("metrics", ":2112", "metrics listen address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
			os.Exit(1)
		}
	}()

	c := &client{base: *target, http: &http.Client{Timeout: 5 * time.Second}}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.runLifecycle(ctx); err != nil {
				log.Printf("lifecycle: %v", err)
			}
		}
	}
}

// runLifecycle creates an order, reads it back and either deletes it while
// pending or walks it part of the way to delivered.
func (c *client) runLifecycle(ctx context.Context) error {
	created := order{
		DeliverTo:    fmt.Sprintf("%d Load Test Street", rand.Intn(1000)),
		MobileNumber: "555-" + strconv.Itoa(1000+rand.Intn(9000)),
		Dishes:       []map[string]any{{"id": "d1", "price": 9.5, "quantity": 1 + rand.Intn(3)}},
	}

	var res envelope
	if err := c.call(ctx, "create", http.MethodPost, "/orders", envelope{Data: created}, &res); err != nil {
		return err
	}
	id := res.Data.ID

	if err := c.call(ctx, "read", http.MethodGet, "/orders/"+id, nil, nil); err != nil {
		return err
	}

	if rand.Intn(4) == 0 {
		return c.call(ctx, "delete", http.MethodDelete, "/orders/"+id, nil, nil)
	}

	steps := 1 + rand.Intn(len(lifecycle))
	for _, status := range lifecycle[:steps] {
		next := res.Data
		next.Status = status
		if err := c.call(ctx, "update", http.MethodPut, "/orders/"+id, envelope{Data: next}, &res); err != nil {
			return err
		}
	}

	return c.call(ctx, "list", http.MethodGet, "/orders", nil, nil)
}

func (c *client) call(ctx context.Context, operation, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: unexpected status %d", operation, resp.StatusCode)
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
