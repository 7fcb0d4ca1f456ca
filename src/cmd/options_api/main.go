package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analyzer/src/api"
	"github.com/jiaming2012/options-analyzer/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/options_api/main.go --port 8080",
	Short: "Serve the options pricing and sweep API",
	Run: func(cmd *cobra.Command, args []string) {
		port, err := cmd.Flags().GetString("port")
		if err != nil {
			log.Fatalf("error getting port: %v", err)
		}

		if err := utils.InitEnvironmentVariables(); err != nil {
			log.Warnf("continuing without .env file: %v", err)
		}

		router := mux.NewRouter()
		api.SetupHandler(router.PathPrefix("/options").Subrouter())

		srv := &http.Server{
			Handler: router,
			Addr:    fmt.Sprintf(":%s", port),
		}

		go func() {
			log.Infof("listening on :%s", port)
			if err := srv.ListenAndServe(); err != nil {
				if err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		signal.Notify(stop, syscall.SIGTERM)

		<-stop

		log.Info("shutting down")
		srv.Close()
	},
}

func main() {
	runCmd.PersistentFlags().String("port", "8080", "The port to listen on.")
	runCmd.Execute()
}
