// Command main runs the database seeder for ClubHub.
package main

import (
	"flag"
	"log"

	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of demo users to create")
	postsPerClub := flag.Int("posts", 6, "Number of demo posts per club")
	ownerID := flag.Uint("owner", 1, "User ID that owns the built-in clubs")
	demo := flag.Bool("demo", true, "Also seed demo users, memberships, and posts")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Clubs(db, *ownerID); err != nil {
		log.Fatalf("Built-in club seeding failed: %v", err)
	}
	log.Println("Built-in clubs seeded")

	if *demo {
		opts := seed.DefaultDemoOptions()
		opts.Users = *numUsers
		opts.PostsPerClub = *postsPerClub
		if err := seed.Demo(db, opts); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
		log.Printf("Demo data seeded (%d users, password %q)", opts.Users, opts.Password)
	}

	log.Println("All done.")
}
