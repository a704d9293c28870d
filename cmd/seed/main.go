package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"staybook/internal/guests"
	"staybook/internal/rooms"
	"staybook/internal/shared/config"
	"staybook/internal/shared/database"
	"staybook/internal/staff"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Staybook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	// Seed data
	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded successfully")

	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"booking_records",
		"rooms",
		"room_types",
		"guests",
		"staff",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedStaff(); err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}

	roomTypeIDs, err := s.SeedRoomTypes()
	if err != nil {
		return fmt.Errorf("failed to seed room types: %w", err)
	}

	if err := s.SeedRooms(roomTypeIDs); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	if err := s.SeedGuests(); err != nil {
		return fmt.Errorf("failed to seed guests: %w", err)
	}

	// Clear Redis so stale catalog entries and room holds don't survive a reseed
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedStaff creates a manager and two receptionists
func (s *Seeder) SeedStaff() error {
	fmt.Println("  Seeding staff...")

	// Hash password for all accounts (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	staffData := []struct {
		firstName string
		lastName  string
		email     string
		role      staff.Role
	}{
		{"Grace", "Hollister", "manager@staybook.com", staff.RoleManager},
		{"Dana", "Reyes", "frontdesk1@staybook.com", staff.RoleReceptionist},
		{"Omar", "Castillo", "frontdesk2@staybook.com", staff.RoleReceptionist},
	}

	for _, data := range staffData {
		member := staff.Staff{
			ID:        uuid.New(),
			FirstName: data.firstName,
			LastName:  data.lastName,
			Email:     data.email,
			Password:  string(hashedPassword),
			Role:      data.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create staff member %s: %w", data.email, err)
		}

		fmt.Printf("    Created staff member: %s (%s)\n", member.Email, member.Role)
	}

	return nil
}

// SeedRoomTypes creates the bookable room categories
func (s *Seeder) SeedRoomTypes() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding room types...")

	roomTypeIDs := make(map[string]uuid.UUID)

	roomTypesData := []struct {
		code         string
		description  string
		maxOccupancy int
		nightlyRate  float64
	}{
		{"SGL", "Single room with one twin bed", 1, 95.0},
		{"DBL", "Double room with queen bed", 2, 150.0},
		{"FAM", "Family room with two queen beds", 4, 210.0},
		{"STE", "Suite with separate living area", 4, 340.0},
	}

	for _, data := range roomTypesData {
		roomType := rooms.RoomType{
			ID:           uuid.New(),
			Code:         data.code,
			Description:  data.description,
			MaxOccupancy: data.maxOccupancy,
			NightlyRate:  data.nightlyRate,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&roomType).Error; err != nil {
			return nil, fmt.Errorf("failed to create room type %s: %w", data.code, err)
		}

		roomTypeIDs[data.code] = roomType.ID
		fmt.Printf("    Created room type: %s (%s)\n", roomType.Code, roomType.Description)
	}

	return roomTypeIDs, nil
}

// SeedRooms creates the physical room inventory
func (s *Seeder) SeedRooms(roomTypeIDs map[string]uuid.UUID) error {
	fmt.Println("  Seeding rooms...")

	roomsData := []struct {
		number   string
		typeCode string
	}{
		{"101", "SGL"},
		{"102", "SGL"},
		{"103", "DBL"},
		{"104", "DBL"},
		{"105", "DBL"},
		{"201", "DBL"},
		{"202", "FAM"},
		{"203", "FAM"},
		{"301", "STE"},
		{"302", "STE"},
	}

	for _, data := range roomsData {
		typeID, ok := roomTypeIDs[data.typeCode]
		if !ok {
			return fmt.Errorf("unknown room type code %s for room %s", data.typeCode, data.number)
		}

		room := rooms.Room{
			ID:         uuid.New(),
			Number:     data.number,
			RoomTypeID: typeID,
			CreatedAt:  time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&room).Error; err != nil {
			return fmt.Errorf("failed to create room %s: %w", data.number, err)
		}

		fmt.Printf("    Created room: %s (%s)\n", room.Number, data.typeCode)
	}

	return nil
}

// SeedGuests creates a few returning guests so known-phone sessions can be
// exercised immediately
func (s *Seeder) SeedGuests() error {
	fmt.Println("  Seeding guests...")

	// Phones are stored in normalized form (no separators), matching what the
	// guest service writes on registration
	guestsData := []struct {
		name    string
		address string
		phone   string
	}{
		{"Alice Smith", "17 Rose Lane, Springfield", "+15550101"},
		{"Marco Ortega", "8 Harbor View, Port Allen", "+15550102"},
		{"Yuki Tanaka", "42 Cedar Court, Riverton", "+15550103"},
	}

	for _, data := range guestsData {
		guest := guests.Guest{
			ID:        uuid.New(),
			Name:      data.name,
			Address:   data.address,
			Phone:     data.phone,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&guest).Error; err != nil {
			return fmt.Errorf("failed to create guest %s: %w", data.name, err)
		}

		fmt.Printf("    Created guest: %s (%s)\n", guest.Name, guest.Phone)
	}

	return nil
}
