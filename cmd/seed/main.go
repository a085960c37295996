// Command main runs the database seeder for Tagboard.
package main

import (
	"context"
	"flag"
	"log"

	"tagboard/internal/config"
	"tagboard/internal/database"
	"tagboard/internal/seed"
)

func main() {
	numTags := flag.Int("tags", 20, "Number of tags to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumTags:     *numTags,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}
	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d tags and %d posts", *numTags, *numPosts)
}
