package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/wordich/internal/bot"
	"github.com/example/wordich/internal/database"
	"github.com/example/wordich/internal/excel"
	"github.com/example/wordich/internal/lesson"
	"github.com/example/wordich/internal/quiz"
	"github.com/example/wordich/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Seed the word catalog on first run.
	if path := os.Getenv("DICTIONARY_FILE"); path != "" {
		seedCatalog(path)
	}

	gen := quiz.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	lessons := lesson.NewService(database.NewStore(), gen, nil)

	b, err := bot.New(lessons)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reminders *scheduler.Scheduler
	if os.Getenv("ENABLE_SCHEDULER") != "false" {
		reminders = scheduler.New(b)
		reminders.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		if reminders != nil {
			reminders.Stop()
		}
		b.Stop()
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Printf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}

// seedCatalog imports the dictionary when the catalog is still empty.
func seedCatalog(path string) {
	ctx := context.Background()
	words := database.NewWordRepository()

	count, err := words.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to check catalog: %v", err)
	}
	if count > 0 {
		return
	}

	result, err := excel.ImportDictionary(ctx, path)
	if err != nil {
		log.Fatalf("Failed to import dictionary: %v", err)
	}
	log.Printf("Dictionary imported: %d words (%d rows skipped)", result.Imported, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("Import warning: %s", e)
	}
}
