package main

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VoidedClouds/solid-alien-signals/pkg/resource"
	"github.com/VoidedClouds/solid-alien-signals/pkg/signals"
)

// snapshot is the wire form of the quote resource's current state.
type snapshot struct {
	Symbol  string  `json:"symbol"`
	State   string  `json:"state"`
	Loading bool    `json:"loading"`
	Price   float64 `json:"price"`
	Error   string  `json:"error,omitempty"`
}

// demo holds the selected-symbol signal and the quote resource keyed on
// it.
type demo struct {
	symbol *signals.Signal[string]
	quote  *resource.Resource[float64]
}

func newDemo() *demo {
	d := &demo{symbol: signals.New("ACME")}

	d.quote = resource.NewKeyed(
		func() (string, bool) {
			s := d.symbol.Get()
			return s, s != ""
		},
		fetchQuote,
		resource.WithName[float64]("quote"),
		resource.WithMetrics[float64](resource.NewMetrics()),
		resource.WithTracer[float64](resource.Tracer()),
	)
	return d
}

// fetchQuote simulates an upstream quote service with latency. The
// symbol "FAIL" always errors, which makes the error path easy to poke
// at from curl.
func fetchQuote(symbol string, info resource.Info[float64]) *resource.Task[float64] {
	return resource.Go(func() (float64, error) {
		time.Sleep(150 * time.Millisecond)
		if symbol == "FAIL" {
			return 0, &resource.ValueError{Message: "upstream unavailable", Value: symbol}
		}

		base := float64(0)
		for _, c := range symbol {
			base += float64(c)
		}
		return base + rand.Float64()*10, nil
	})
}

// currentSnapshot reads the resource reactively; calling it inside an
// effect subscribes the effect to every cell it touches.
func (d *demo) currentSnapshot() snapshot {
	v, err := d.quote.Latest()
	snap := snapshot{
		Symbol:  d.symbol.Peek(),
		State:   d.quote.State().String(),
		Loading: d.quote.Loading(),
		Price:   v,
	}
	if err != nil {
		snap.Error = err.Error()
	}
	return snap
}

func serve(addr string) error {
	d := newDemo()

	r := chi.NewRouter()
	r.Get("/state", d.handleState)
	r.Post("/symbol/{symbol}", d.handleSymbol)
	r.Post("/refetch", d.handleRefetch)
	r.Post("/mutate", d.handleMutate)
	r.Get("/ws", d.handleWS)
	r.Handle("/metrics", promhttp.Handler())

	log.Printf("resource-demo listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

func (d *demo) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, d.currentSnapshot())
}

func (d *demo) handleSymbol(w http.ResponseWriter, r *http.Request) {
	d.symbol.Set(chi.URLParam(r, "symbol"))
	writeJSON(w, d.currentSnapshot())
}

func (d *demo) handleRefetch(w http.ResponseWriter, r *http.Request) {
	task := d.quote.Refetch()
	if task == nil {
		// Deduplicated or source disabled; report the current state.
		writeJSON(w, d.currentSnapshot())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := task.Wait(ctx); err != nil && ctx.Err() != nil {
		http.Error(w, "refetch timed out", http.StatusGatewayTimeout)
		return
	}
	writeJSON(w, d.currentSnapshot())
}

func (d *demo) handleMutate(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}
	d.quote.Mutate(price)
	writeJSON(w, d.currentSnapshot())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleWS streams state snapshots. An effect subscribed to the resource
// cells forwards every transition into the connection's update channel;
// the effect lives in a scope disposed when the client goes away.
func (d *demo) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	updates := make(chan snapshot, 16)
	scope := signals.NewScope(nil)
	scope.Run(func() {
		signals.NewEffect(func() signals.Cleanup {
			snap := d.currentSnapshot()
			select {
			case updates <- snap:
			default:
			}
			return nil
		})
	})
	defer scope.Dispose()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap := <-updates:
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
