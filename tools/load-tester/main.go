package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Drives synthetic traffic through the capture middleware and periodically
// polls the developer console, so both the append path and the query path
// are under load at once.
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the service")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 500, "Requests per second limit")
	flag.Parse()

	log.Printf("Starting load test on %s", *baseURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d", *concurrency, *duration, *rps)

	var wg sync.WaitGroup
	var trafficCount, queryCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 100) // Allow bursts up to 100

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{
				Timeout: 5 * time.Second,
			}

			for n := 0; ; n++ {
				select {
				case <-ctx.Done():
					return
				default:
					if err := limiter.Wait(ctx); err != nil {
						return
					}

					// Every tenth request reads the console instead of
					// generating traffic.
					if n%10 == 9 {
						resp, err := client.Get(*baseURL + "/api/dev/logs?pageSize=50")
						if err != nil || resp.StatusCode != http.StatusOK {
							errorCount.Add(1)
						} else {
							queryCount.Add(1)
						}
						if resp != nil {
							resp.Body.Close()
						}
						continue
					}

					payload := fmt.Sprintf(`{"order_id": "%s", "worker": %d, "ts": "%s"}`,
						uuid.NewString(), workerID, time.Now().Format(time.RFC3339Nano))

					req, err := http.NewRequestWithContext(ctx, http.MethodPost,
						*baseURL+"/load/orders", bytes.NewBufferString(payload))
					if err != nil {
						continue
					}
					req.Header.Set("Content-Type", "application/json")

					resp, err := client.Do(req)
					if err != nil {
						errorCount.Add(1)
						continue
					}
					resp.Body.Close()
					trafficCount.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()

	total := trafficCount.Load() + queryCount.Load() + errorCount.Load()
	actualRPS := float64(total) / duration.Seconds()

	log.Println("Load test finished.")
	log.Printf("Total Requests: %d", total)
	log.Printf("Traffic requests (captured): %d", trafficCount.Load())
	log.Printf("Console queries: %d", queryCount.Load())
	log.Printf("Errors: %d", errorCount.Load())
	log.Printf("Actual RPS: %.2f", actualRPS)
}
