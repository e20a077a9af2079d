package main

// Intents are typed one per line on stdin and answered with JSON on stdout:
//
//   GET /products                  - full catalog
//   GET /products/filtered         - catalog narrowed by the current filter
//   PATCH /filter {"category":"clothing","size":"all","search_text":""}
//   POST /cart/add {"product_id":1}
//   POST /cart/remove {"product_id":1}
//   GET /cart/list                 - entries and totals
//   POST /admin {"on":true}        - show the admin controls
//   POST /draft/new | /draft/edit/{id}, PATCH /draft, POST /draft/sizes,
//   POST /draft/save | /draft/cancel
//   POST /products, PUT /products/{id}, DELETE /products/{id}
//
// Nothing listens on a socket: requests are served in-process.

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/mini-magazin-site/config"
	"github.com/pr-poehali-dev/mini-magazin-site/handler"
	"github.com/pr-poehali-dev/mini-magazin-site/service"
	"github.com/pr-poehali-dev/mini-magazin-site/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("error loading .env: %v", err)
	}

	cfg := config.MustLoad()

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	seed, err := cfg.Seed()
	if err != nil {
		log.Fatalf("Invalid catalog: %v", err)
	}

	// --- Store ---
	st, err := store.NewMemoryStore(seed...)
	if err != nil {
		log.Fatalf("Store init failed: %v", err)
	}

	// --- Service ---
	svc := service.NewService(st, logger)
	var serviceInterface service.ServiceInterface = svc

	// --- Handlers ---
	h := handler.NewHandler(serviceInterface, logger)

	// --- Router ---
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	logger.Info("catalog ready", zap.Int("products", len(seed)), zap.String("env", cfg.Env))

	if err := serve(r, os.Stdin, os.Stdout); err != nil {
		logger.Error("input error", zap.Error(err))
		os.Exit(1)
	}
}

// serve dispatches one intent per input line until in is exhausted.
func serve(r *mux.Router, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		method, rest, _ := strings.Cut(line, " ")
		path, body, _ := strings.Cut(strings.TrimSpace(rest), " ")
		if !strings.HasPrefix(path, "/") {
			fmt.Fprintln(out, `{"error":"usage: METHOD PATH [JSON]"}`)
			continue
		}

		req, err := http.NewRequest(strings.ToUpper(method), path, strings.NewReader(body))
		if err != nil {
			msg, _ := json.Marshal(map[string]string{"error": err.Error()})
			fmt.Fprintf(out, "%s\n", msg)
			continue
		}
		rec := newRecorder()
		r.ServeHTTP(rec, req)

		fmt.Fprintf(out, "%d %s", rec.code, rec.body.String())
		if rec.body.Len() == 0 {
			fmt.Fprintln(out)
		}
	}
	return sc.Err()
}

// recorder buffers a single response for printing.
type recorder struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), code: http.StatusOK}
}

func (w *recorder) Header() http.Header { return w.header }

func (w *recorder) Write(b []byte) (int, error) { return w.body.Write(b) }

func (w *recorder) WriteHeader(code int) { w.code = code }
