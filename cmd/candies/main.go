// Command candies runs a standalone candies server configured only through
// CANDIES_PORT and MONGODB_URI. Without MONGODB_URI it keeps records in memory.
package main

import (
	"context"
	"os"
	"time"

	"github.com/candies-app/candies/internal/candy/repository"
	"github.com/candies-app/candies/internal/candy/service"
	"github.com/candies-app/candies/internal/database"
	"github.com/candies-app/candies/internal/server"
	"github.com/candies-app/candies/pkg/logger"
	"github.com/candies-app/candies/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("CANDIES_PORT")
	if port == "" {
		port = "3000"
	}

	svc := service.NewMemoryService()
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		client, err := database.ConnectMongo(context.Background(), uri, 10*time.Second)
		if err != nil {
			logger.Warnf("cannot connect to MongoDB (%v); using memory-backed repo", err)
		} else {
			db := os.Getenv("MONGODB_DATABASE")
			if db == "" {
				db = "candies-app"
			}
			svc = service.NewService(repository.NewMongoRepo(client.Database(db).Collection("candies")))
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r, err := server.NewRouter(server.Deps{Service: svc})
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}

	logger.Infof("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
