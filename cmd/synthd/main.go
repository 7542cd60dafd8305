package main

import (
	"log"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/qfold/qsynth/gen/synthpb"
	"github.com/qfold/qsynth/internal/rpc"
	"github.com/qfold/qsynth/internal/runlog"
)

// #region main
func main() {
	addr := envOr("SYNTH_ADDR", ":50051")
	dbPath := os.Getenv("SYNTH_DB")

	var store *runlog.Store
	if dbPath != "" {
		var err error
		store, err = runlog.NewStore(dbPath)
		if err != nil {
			log.Fatalf("failed to open run log: %v", err)
		}
		defer store.Close()
		log.Printf("[SYNTHD] recording runs to %s", dbPath)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", addr, err)
	}

	srv := grpc.NewServer()
	synthpb.RegisterQSynthServer(srv, rpc.NewServer(store))

	log.Printf("[SYNTHD] serving on %s", addr)
	if err := srv.Serve(lis); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// #endregion main

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
