package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"safetysight/auth"
	"safetysight/config"
	"safetysight/cronjobs"
	"safetysight/db"
	"safetysight/feed"
	"safetysight/handlers"
	"safetysight/routes"
	"safetysight/storage"
	"safetysight/store"
	"safetysight/summarization"
	"safetysight/types"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	cfg.Validate()

	log.Printf("Starting SafetySight API (environment: %s, port: %s)",
		cfg.Server.Environment, cfg.Server.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := db.New(ctx, db.Config{
		CredentialsEnv:  cfg.Firebase.CredentialsEnv,
		CredentialsFile: cfg.Firebase.CredentialsFile,
		DatabaseURL:     cfg.Firebase.DatabaseURL,
		StorageBucket:   cfg.Firebase.StorageBucket,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer client.Close()

	backend := db.NewFirestoreBackend(client.Firestore)
	uploader := storage.NewUploader(client.Bucket, client.BucketName)
	users := db.NewUsers(client.Firestore)
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	incidents := store.New(db.CollectionIncidents, types.IncidentLifecycle, backend, store.ValidateIncident)
	missing := store.New(db.CollectionMissingPersons, types.MissingPersonLifecycle, backend, store.ValidateMissingPerson)
	lostFound := store.New(db.CollectionLostFound, types.LostFoundLifecycle, backend, store.ValidateLostFound)
	tasks := store.New(db.CollectionTasks, types.TaskLifecycle, backend, store.ValidateTask)
	alerts := store.New(db.CollectionAlerts, types.AlertLifecycle, backend, store.ValidateAlert)
	responders := store.NewResponderDirectory()

	warmStores(ctx, client, incidents, missing, lostFound, tasks, alerts)

	summaryFeed := feed.New(
		feed.NewRTDBSource(client.Realtime, cfg.Summaries.SummaryPath),
		cfg.Summaries.PollInterval,
	)
	go summaryFeed.Run(ctx)

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey)
	generator := summarization.New(client.Realtime, cfg.Summaries.AnomalyPath, cfg.Summaries.SummaryPath, openaiClient)

	scheduler := cronjobs.InitCronJobs(generator, responders)
	defer scheduler.Stop()

	router := routes.SetupRouter(jwtManager, routes.Handlers{
		Auth:       handlers.NewAuthHandler(users, jwtManager),
		Dashboard:  handlers.NewDashboardHandler(),
		Incidents:  handlers.NewIncidentHandler(incidents, uploader),
		Missing:    handlers.NewMissingPersonHandler(missing, uploader),
		LostFound:  handlers.NewLostFoundHandler(lostFound, uploader),
		Tasks:      handlers.NewTaskHandler(tasks),
		Alerts:     handlers.NewAlertHandler(alerts),
		Responders: handlers.NewResponderHandler(responders),
		Summaries:  handlers.NewSummaryHandler(summaryFeed),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// warmStores seeds the local snapshots from the persisted collections,
// newest first by each entity's creation stamp. A failed load logs and
// leaves that store empty rather than blocking startup.
func warmStores(
	ctx context.Context,
	client *db.Client,
	incidents *store.Store[*types.IncidentReport],
	missing *store.Store[*types.MissingPersonReport],
	lostFound *store.Store[*types.LostFoundItem],
	tasks *store.Store[*types.Task],
	alerts *store.Store[*types.Alert],
) {
	if recs, err := db.LoadRecords(ctx, client.Firestore, db.CollectionIncidents, "reportedAt",
		func() *types.IncidentReport { return &types.IncidentReport{} }); err != nil {
		log.Printf("Warning: loading incident reports: %v", err)
	} else {
		incidents.Warm(recs)
	}

	if recs, err := db.LoadRecords(ctx, client.Firestore, db.CollectionMissingPersons, "createdAt",
		func() *types.MissingPersonReport { return &types.MissingPersonReport{} }); err != nil {
		log.Printf("Warning: loading missing-person reports: %v", err)
	} else {
		missing.Warm(recs)
	}

	if recs, err := db.LoadRecords(ctx, client.Firestore, db.CollectionLostFound, "dateReported",
		func() *types.LostFoundItem { return &types.LostFoundItem{} }); err != nil {
		log.Printf("Warning: loading lost-found items: %v", err)
	} else {
		lostFound.Warm(recs)
	}

	if recs, err := db.LoadRecords(ctx, client.Firestore, db.CollectionTasks, "createdAt",
		func() *types.Task { return &types.Task{} }); err != nil {
		log.Printf("Warning: loading tasks: %v", err)
	} else {
		tasks.Warm(recs)
	}

	if recs, err := db.LoadRecords(ctx, client.Firestore, db.CollectionAlerts, "timestamp",
		func() *types.Alert { return &types.Alert{} }); err != nil {
		log.Printf("Warning: loading alerts: %v", err)
	} else {
		alerts.Warm(recs)
	}

	log.Printf("Warmed stores: %d incidents, %d missing, %d lost-found, %d tasks, %d alerts",
		incidents.Len(), missing.Len(), lostFound.Len(), tasks.Len(), alerts.Len())
}
