package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/cmd/cmdutil"
	"github.com/arcana-network/keygen/manager"
	"github.com/arcana-network/keygen/server"
	"github.com/arcana-network/keygen/server/rpc"
	"github.com/arcana-network/keygen/telemetry"
)

const shutdownTimeout = 10 * time.Second

func GetCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "serve",
		Short: "Command to serve key generation over JSON-RPC",
		RunE:  runCommand,
	}

	setFlags(cmd)

	return cmd
}

func setFlags(cmd *cobra.Command) {
	cmdutil.AddCurveFlag(cmd)
	cmd.Flags().String(
		cmdutil.ServerPortFlag,
		"",
		"Used to specify the server port. Default: '8000'",
	)
	cmd.Flags().String(
		cmdutil.MetricsPortFlag,
		"",
		"Used to specify the metrics port. Empty config value disables the separate listener",
	)
}

func runCommand(cmd *cobra.Command, _ []string) error {
	conf, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	curve, err := conf.ResolveCurve()
	if err != nil {
		return err
	}
	ttl, err := conf.CacheTTL()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	managers := rpc.NewManagers(curve,
		manager.WithMetrics(telemetry.NewMetrics(reg)),
		manager.WithPublicKeyCache(ttl),
	)

	s, err := server.New(":"+conf.HttpServerPort, managers, reg)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	if conf.MetricsPort != "" {
		go func() {
			if err := telemetry.StartClient(":"+conf.MetricsPort, reg); err != nil {
				log.WithError(err).Error("MetricsClient")
			}
		}()
	}

	log.WithFields(log.Fields{
		"curve": curve.Name,
		"port":  conf.HttpServerPort,
	}).Info("keygen server started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}
