package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_events", "guard_assignments", "operator_profiles", "supervisor_profiles", "beats", "locations", "people"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		people := []struct {
			Email      string
			Name       string
			Role       string
			EmployeeID string
		}{
			{"admin@guardforce.example", "Site Admin", "ADMIN", "AD-000001-001"},
			{"director@guardforce.example", "Operations Director", "DIRECTOR", "DR-000001-001"},
			{"manager@guardforce.example", "Area Manager", "MANAGER", "MG-000001-001"},
			{"gsupervisor@guardforce.example", "General Supervisor", "GENERAL_SUPERVISOR", "GS-000001-001"},
			{"supervisor.east@guardforce.example", "East Zone Supervisor", "SUPERVISOR", "SV-000001-001"},
			{"supervisor.west@guardforce.example", "West Zone Supervisor", "SUPERVISOR", "SV-000001-002"},
			{"secretary@guardforce.example", "Operations Secretary", "SECRETARY", "SC-000001-001"},
		}

		for _, p := range people {
			if personExists(db, p.Email) {
				fmt.Printf("person %s already exists, skipping\n", p.Email)
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO people (email, name, role, status, employee_id, password_hash, created_at, updated_at) VALUES ($1, $2, $3, 'ACTIVE', $4, $5, now(), now())",
				p.Email, p.Name, p.Role, p.EmployeeID, string(hash)); err != nil {
				log.Fatalf("failed to insert person %s: %v", p.Email, err)
			}
			fmt.Println("Seeded person:", p.Email)
		}

		locations := []struct {
			Code string
			Name string
		}{
			{"HQ-EAST", "East Industrial Park"},
			{"HQ-WEST", "West Business District"},
		}

		for _, l := range locations {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM locations WHERE code = $1", l.Code).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO locations (code, name, is_active, created_at, updated_at) VALUES ($1, $2, true, now(), now())",
				l.Code, l.Name); err != nil {
				log.Fatalf("failed to insert location %s: %v", l.Code, err)
			}
			fmt.Println("Seeded location:", l.Code)
		}

		beats := []struct {
			LocationCode string
			Code         string
			Name         string
			Headcount    int
		}{
			{"HQ-EAST", "E-GATE", "East Main Gate", 2},
			{"HQ-EAST", "E-PATROL", "East Perimeter Patrol", 4},
			{"HQ-WEST", "W-LOBBY", "West Tower Lobby", 1},
			{"HQ-WEST", "W-DOCK", "West Loading Dock", 2},
		}

		for _, b := range beats {
			var locationID int64
			if err := db.QueryRow("SELECT id FROM locations WHERE code = $1", b.LocationCode).Scan(&locationID); err != nil {
				log.Fatalf("location %s not found for beat %s: %v", b.LocationCode, b.Code, err)
			}

			var exists int
			if err := db.QueryRow("SELECT 1 FROM beats WHERE code = $1", b.Code).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO beats (location_id, code, name, required_headcount, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, true, now(), now())",
				locationID, b.Code, b.Name, b.Headcount); err != nil {
				log.Fatalf("failed to insert beat %s: %v", b.Code, err)
			}
			fmt.Println("Seeded beat:", b.Code)
		}

		var generalSupervisorPersonID int64
		if err := db.QueryRow("SELECT id FROM people WHERE email = $1", "gsupervisor@guardforce.example").Scan(&generalSupervisorPersonID); err != nil {
			log.Fatalf("failed to look up general supervisor: %v", err)
		}

		if !supervisorProfileExists(db, generalSupervisorPersonID) {
			if _, err := db.Exec(
				"INSERT INTO supervisor_profiles (person_id, supervisor_type, approval_status, created_at, updated_at) VALUES ($1, 'GENERAL_SUPERVISOR', 'APPROVED', now(), now())",
				generalSupervisorPersonID); err != nil {
				log.Fatalf("failed to insert general supervisor profile: %v", err)
			}
			fmt.Println("Seeded general supervisor profile")
		}

		var generalSupervisorProfileID int64
		if err := db.QueryRow("SELECT id FROM supervisor_profiles WHERE person_id = $1", generalSupervisorPersonID).Scan(&generalSupervisorProfileID); err != nil {
			log.Fatalf("failed to look up general supervisor profile: %v", err)
		}

		supervisors := []struct {
			Email        string
			LocationCode string
		}{
			{"supervisor.east@guardforce.example", "HQ-EAST"},
			{"supervisor.west@guardforce.example", "HQ-WEST"},
		}

		for _, s := range supervisors {
			var personID int64
			if err := db.QueryRow("SELECT id FROM people WHERE email = $1", s.Email).Scan(&personID); err != nil {
				log.Fatalf("failed to look up supervisor %s: %v", s.Email, err)
			}
			if supervisorProfileExists(db, personID) {
				continue
			}

			var locationID int64
			if err := db.QueryRow("SELECT id FROM locations WHERE code = $1", s.LocationCode).Scan(&locationID); err != nil {
				log.Fatalf("location %s not found: %v", s.LocationCode, err)
			}

			if _, err := db.Exec(
				"INSERT INTO supervisor_profiles (person_id, supervisor_type, general_supervisor_id, location_id, approval_status, created_at, updated_at) VALUES ($1, 'SUPERVISOR', $2, $3, 'APPROVED', now(), now())",
				personID, generalSupervisorProfileID, locationID); err != nil {
				log.Fatalf("failed to insert supervisor profile for %s: %v", s.Email, err)
			}
			fmt.Println("Seeded supervisor profile:", s.Email)
		}

		fmt.Println("Seeding complete. Default password for all seeded accounts:", password)
	},
}

func personExists(db *sqlx.DB, email string) bool {
	var one int
	return db.QueryRow("SELECT 1 FROM people WHERE email = $1", email).Scan(&one) == nil
}

func supervisorProfileExists(db *sqlx.DB, personID int64) bool {
	var one int
	return db.QueryRow("SELECT 1 FROM supervisor_profiles WHERE person_id = $1", personID).Scan(&one) == nil
}
