//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scoutforge/camp-ops-go/api"
	"github.com/scoutforge/camp-ops-go/conf"
	"github.com/scoutforge/camp-ops-go/directory"
	"github.com/scoutforge/camp-ops-go/lib/log"
	"github.com/scoutforge/camp-ops-go/store"
	"github.com/spf13/cobra"
)

const (
	envfileFlagName    = "envfile"
	envFileDefaultName = ".env"

	printConfigFlagName = "print-config"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the camp-ops server",
	Long: "Launch the camp-ops server\n\n" +
		"Configuration starts from built-in defaults and can be overridden by a\n" +
		".env file and then by environment variables.",
	Run: runServer,
}

func runServer(cmd *cobra.Command, args []string) {
	cfg := mustInitConfig(envFilename)
	os.Exit(runServerInternal(context.Background(), cfg, printConfig, make(chan string, 1)))
}

// runServerInternal starts the camp-ops server and blocks until it is terminated.
//
// The supplied channel will be provided with the address of the server at the time when
// the server is started and ready to accept connections.
func runServerInternal(
	ctx context.Context, unvalidatedCfg *conf.CampOpsConfig,
	printConfig bool, listeningAddr chan<- string,
) (exitCode int) {
	must(unvalidatedCfg.Validate())
	cfg := unvalidatedCfg

	configureLogger(cfg)

	if printConfig {
		stderrPrintf("Here's the final redacted CampOpsConfig:\n\n%v\n\n", cfg.PrintRedacted())
		stderrPrintf("With JWTSecret: %v...%v\n",
			cfg.Core.JWTSecret[:1], cfg.Core.JWTSecret[len(cfg.Core.JWTSecret)-1:])
	}

	db, err := store.Open(cfg.Store.DataDir)
	must(err)
	userStore := directory.NewUserStore(
		db.LoginsPath(), db.DisabledLoginsPath(), cfg.Directory.InMemoryCacheTTL)

	notifyCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	eventSource := api.NewEventSourcerer()
	mux := http.NewServeMux()
	api.AddToMux(mux, eventSource, cfg, db, userStore)

	s := &http.Server{
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// This needs to be long to support long-lived EventSource calls.
		// After this duration, a client will be disconnected and forced
		// to reconnect.
		WriteTimeout:   30 * time.Minute,
		MaxHeaderBytes: 1 << 20,
	}
	s.RegisterOnShutdown(func() {
		eventSource.Server.Close()
	})

	addr := fmt.Sprintf("%v:%v", cfg.Core.Host, cfg.Core.Port)
	listener, err := net.Listen("tcp", addr)
	must(err)
	addr = fmt.Sprintf("%v:%v", cfg.Core.Host, listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err := s.Serve(listener)
		slog.Error("Serve", "err", err)
	}()

	slog.Info("camp-ops server is ready for connections", "addr", addr)
	slog.Info(fmt.Sprintf("The API lives under http://%v/camp-ops/api/", addr))

	listeningAddr <- addr
	close(listeningAddr)
	// The goroutine will hang here until the NotifyContext is done
	<-notifyCtx.Done()
	stop()
	slog.Error("Shutting down gracefully, press Ctrl+C again to force")

	// Tell the server to shut down, giving it this much time to do so gracefully.
	// Don't parent this ctx on the notifyCtx, because it's already done.
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = s.Shutdown(timeoutCtx)
	slog.Error("Server shut down", "err", err)
	stop()
	cancel()
	return 69
}

func configureLogger(cfg *conf.CampOpsConfig) {
	var logLevel slog.Level
	must(logLevel.UnmarshalText([]byte(cfg.Core.LogLevel)))
	logger := slog.New(
		log.New(
			&slog.HandlerOptions{Level: logLevel},
		),
	)
	slog.SetDefault(logger)
}

var (
	envFilename string
	printConfig bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&envFilename, envfileFlagName, envFileDefaultName,
		"An env file from which to load camp-ops server configuration. "+
			"Defaults to '.env' in the current directory")
	serveCmd.Flags().BoolVar(&printConfig, printConfigFlagName, true,
		"Whether to print the redacted CampOpsConfig on server startup")
}

// must logs an error and panics. This should only be done for
// startup errors, not after the server is up and running.
func must(err error) {
	if err != nil {
		panic("got a startup error: " + err.Error())
	}
}

func stderrPrintf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
