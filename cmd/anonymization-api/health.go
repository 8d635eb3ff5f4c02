package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const healthInterval = 10 * time.Second

// updateHealth sets the overall serving status from ready and reports whether it
// is serving.
func updateHealth(hs *health.Server, ready func() bool) bool {
	if ready() {
		hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		return true
	}
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return false
}

// watchHealth keeps the serving status of hs in line with ready, checking every
// interval until ctx is done. On return every service is marked NOT_SERVING.
func watchHealth(ctx context.Context, hs *health.Server, ready func() bool, interval time.Duration) {
	serving := updateHealth(hs, ready)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			if now := updateHealth(hs, ready); now != serving {
				serving = now
				log.Warn().Bool("serving", serving).Msg("health status changed")
			}
		}
	}
}
