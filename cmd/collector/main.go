package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/younwookim/stm/internal/collector"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	dataDir := flag.String("data", "data", "Directory for the counter and the records")
	flag.Parse()

	store, err := collector.NewFileStore(*dataDir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           collector.NewServer(store).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Collector listening on %s (data: %s)", *addr, *dataDir)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
