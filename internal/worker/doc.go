// Package worker implements the greeting worker lifecycle and Redis Streams integration.
//
// The worker reads greeting requests from a Redis stream, renders them with a
// greeting.Machine, and publishes the results to a result stream. Failed
// requests are published to "<result stream>.errors".
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	machine := greeting.NewMachine(resolver, logger)
//	metrics := worker.NewMetrics(prometheus.DefaultRegisterer)
//
//	w := worker.NewWorker(cfg, redisClient, machine, metrics, logger)
//	if err := w.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
// A request message carries a JSON document in its "data" field:
//
//	{"request_id": "r-1", "user": {"name": "Alice", "title": "Dr.", "locale": "en"},
//	 "category": "formal", "locale": "es", "custom_message": "Welcome."}
//
// Health checks and Prometheus metrics are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, prometheus.DefaultGatherer, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
