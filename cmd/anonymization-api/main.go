package main

import (
	"context"
	"fmt"
	"net"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/pipeline"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// config structure
type anonymizationAPIConfig struct {
	lib.BaseConfig  `mapstructure:",squash"`
	pipeline.Config `mapstructure:",squash"`
	Server          struct {
		HttpPort int `mapstructure:"http_port"`
		GrpcPort int `mapstructure:"grpc_port"`
	}
}

var config anonymizationAPIConfig

func initConfig() {
	// Set default config values
	defaults := pipeline.DefaultConfig()
	defaults["server"] = map[string]interface{}{
		"http_port": 8080,
		"grpc_port": 50051,
	}

	if err := lib.InitializeConfig("./config/anonymization-api.yml", defaults, &config); err != nil {
		log.Fatal().Err(err).Send()
	}
}

// serveHealth exposes the standard grpc health service so that orchestrators can
// probe the api over grpc as well as http. The serving status follows the audit
// store until ctx is done.
func serveHealth(ctx context.Context, port int, c controller) *grpc.Server {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	healthServer := health.NewServer()
	go watchHealth(ctx, healthServer, c.Ready, healthInterval)

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	go func() {
		log.Info().Int("port", port).Msg("grpc health service ready")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc health service stopped")
		}
	}()
	return grpcServer
}

func main() {
	initConfig()

	p, err := pipeline.FromConfig(config.Config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	c := controller{pipeline: p}

	ctx, cancel := context.WithCancel(context.Background())
	grpcServer := serveHealth(ctx, config.Server.GrpcPort, c)
	go lib.HandleInterrupt(cancel, grpcServer.GracefulStop)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.LoggerWithFormatter(lib.JsonLogFormatter), gin.Recovery(), cors.Default())
	s := server{controller: c}
	s.RegisterRoutes(r)

	log.Info().Int("port", config.Server.HttpPort).Msg("ready to accept requests")
	if err := r.Run(fmt.Sprintf(":%d", config.Server.HttpPort)); err != nil {
		cancel()
		grpcServer.Stop()
		log.Fatal().Err(err).Send()
	}
}
