package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"realagent/internal/config"
	"realagent/internal/db"
	"realagent/internal/model"
	"realagent/internal/repository"
)

type sampleUser struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// Two sample accounts per role.
var sampleUsers = []sampleUser{
	{"John Smith", "john.admin@realagent.com", model.RoleAdmin, "admin123"},
	{"Sarah Johnson", "sarah.admin@realagent.com", model.RoleAdmin, "admin456"},
	{"Michael Torres", "michael.player@realagent.com", model.RolePlayer, "player123"},
	{"David Martinez", "david.player@realagent.com", model.RolePlayer, "player456"},
	{"Robert Wilson", "robert.agent@realagent.com", model.RoleAgent, "agent123"},
	{"Jennifer Brown", "jennifer.agent@realagent.com", model.RoleAgent, "agent456"},
	{"James Anderson", "james.manager@realagent.com", model.RoleClubManager, "manager123"},
	{"Patricia Taylor", "patricia.manager@realagent.com", model.RoleClubManager, "manager456"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	inserted, skipped, err := seedUsers(ctx, repo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Seed completed: %d inserted, %d already present", inserted, skipped)

	if err := printSummary(ctx, repo); err != nil {
		log.Fatalf("Failed to read back users: %v", err)
	}
}

// seedUsers inserts the sample accounts, skipping emails that already exist.
func seedUsers(ctx context.Context, repo repository.UserRepository) (inserted, skipped int, err error) {
	for _, s := range sampleUsers {
		_, err := repo.FindByEmail(ctx, s.Email)
		if err == nil {
			log.Printf("  user %s already exists, skipping", s.Email)
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inserted, skipped, fmt.Errorf("check user %s: %w", s.Email, err)
		}

		user := &model.User{
			Name:         s.Name,
			Email:        s.Email,
			Role:         s.Role,
			PasswordHash: model.HashPassword(s.Password),
			IsActive:     true,
		}
		if err := repo.Create(ctx, user); err != nil {
			return inserted, skipped, fmt.Errorf("create user %s: %w", s.Email, err)
		}
		log.Printf("  inserted: %s - %s", s.Name, s.Role)
		inserted++
	}
	return inserted, skipped, nil
}

// printSummary lists all users and per-role counts.
func printSummary(ctx context.Context, repo repository.UserRepository) error {
	users, err := repo.List(ctx, 0, 100)
	if err != nil {
		return err
	}

	fmt.Println("Current users in database:")
	for _, u := range users {
		fmt.Printf("[%d] %-25s %-35s %s\n", u.UserID, u.Name, u.Email, u.Role)
	}
	fmt.Printf("Total users: %d\n\n", len(users))

	counts, err := repo.CountByRole(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Users by role:")
	for _, role := range model.Roles {
		fmt.Printf("%-15s: %d users\n", role, counts[role])
	}
	return nil
}
