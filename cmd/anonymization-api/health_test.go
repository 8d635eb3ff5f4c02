package main

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/anonymize"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/audit"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/pipeline"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/testhelpers"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// flakyStore is a local store whose readiness can be switched at will.
type flakyStore struct {
	audit.Store
	ready int32
}

func (f *flakyStore) Ready() bool { return atomic.LoadInt32(&f.ready) == 1 }

func (f *flakyStore) set(ready bool) {
	var v int32
	if ready {
		v = 1
	}
	atomic.StoreInt32(&f.ready, v)
}

var _ = Describe("Grpc health", func() {

	var store *flakyStore
	var c controller
	var hs *health.Server

	status := func() healthpb.HealthCheckResponse_ServingStatus {
		res, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{})
		Ω(err).Should(BeNil())
		return res.Status
	}

	BeforeEach(func() {
		store = &flakyStore{Store: audit.NewLocalStore()}
		store.set(true)
		c = controller{pipeline: pipeline.New(nil, anonymize.New(testhelpers.MapGenerator(nil)), pipeline.WithAuditStore(store))}
		hs = health.NewServer()
	})

	It("Should follow the readiness of the audit store", func() {
		Ω(updateHealth(hs, c.Ready)).Should(BeTrue())
		Ω(status()).Should(Equal(healthpb.HealthCheckResponse_SERVING))

		store.set(false)
		Ω(updateHealth(hs, c.Ready)).Should(BeFalse())
		Ω(status()).Should(Equal(healthpb.HealthCheckResponse_NOT_SERVING))

		store.set(true)
		Ω(updateHealth(hs, c.Ready)).Should(BeTrue())
		Ω(status()).Should(Equal(healthpb.HealthCheckResponse_SERVING))
	})

	It("Should refresh the status while watching and stop on cancel", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			watchHealth(ctx, hs, c.Ready, 10*time.Millisecond)
			close(done)
		}()

		Eventually(status).Should(Equal(healthpb.HealthCheckResponse_SERVING))
		store.set(false)
		Eventually(status).Should(Equal(healthpb.HealthCheckResponse_NOT_SERVING))
		store.set(true)
		Eventually(status).Should(Equal(healthpb.HealthCheckResponse_SERVING))

		cancel()
		Eventually(done).Should(BeClosed())
		Ω(status()).Should(Equal(healthpb.HealthCheckResponse_NOT_SERVING))
	})
})
