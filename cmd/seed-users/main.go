package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vaishnavcibu/schedule-manager/internal/config"
	"github.com/Vaishnavcibu/schedule-manager/internal/database"
	"github.com/Vaishnavcibu/schedule-manager/internal/logger"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/repository"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
)

// Seeds a demo directory: one admin, a handful of teachers, and a batch of
// students, all with the password "changeme". Re-running skips names that
// already exist.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	authService := service.NewAuthService(cfg, nil)
	directoryService := service.NewDirectoryService(userRepo, appointmentRepo, authService, service.NopViewNotifier{}, log)

	fmt.Println("=== Seeding Demo Directory ===")

	const password = "changeme"

	seed := []struct {
		name string
		role model.Role
	}{
		{"Admin", model.RoleAdmin},
		{"Budi Santoso", model.RoleTeacher},
		{"Siti Aminah", model.RoleTeacher},
		{"Andi Pratama", model.RoleTeacher},
		{"Rina Wati", model.RoleTeacher},
		{"Joko Susilo", model.RoleTeacher},
		{"Ayu Lestari", model.RoleStudent},
		{"Dodi Kusuma", model.RoleStudent},
		{"Eka Putri", model.RoleStudent},
		{"Fahri Hamzah", model.RoleStudent},
		{"Gita Savitri", model.RoleStudent},
		{"Hendra Gunawan", model.RoleStudent},
		{"Ika Sari", model.RoleStudent},
		{"Jamal Mirdad", model.RoleStudent},
		{"Kiki Fatmala", model.RoleStudent},
		{"Lukman Hakim", model.RoleStudent},
	}

	successCount := 0
	for _, entry := range seed {
		user, err := directoryService.CreateUser(ctx, entry.name, entry.role, password)
		switch {
		case errors.Is(err, service.ErrNameTaken):
			fmt.Printf("Skipping %s: already exists\n", entry.name)
		case err != nil:
			fmt.Printf("Error creating %s (%s): %v\n", entry.name, entry.role, err)
		default:
			successCount++
			fmt.Printf("Created %s '%s' with ID: %d\n", entry.role, user.Name, user.ID)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d users.\n", successCount, len(seed))
}
