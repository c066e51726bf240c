package cmd

import (
	"fmt"
	"os"
	"time"

	"commissary/internal/database"
	"commissary/internal/logger"
	"commissary/internal/repository"
	"commissary/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load development fixtures.",
	Long:  `Wipes the database and loads a small commissary dataset. Development only.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()
		defer log.Sync()

		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		db, err := database.NewPostgresConnection(dbURL)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repository.NewRepository(db)
		if err := seed(repo, log); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}

		log.Info("Seeding completed")
		return nil
	},
}

type seedItem struct {
	sku, name, description, unit, category, kind string
}

type seedMovement struct {
	sku       string
	from, to  string
	qty       string
	kind      string
	user      string
	reference string
	notes     string
	daysAgo   int
}

func seed(repo *repository.Repository, log *zap.Logger) error {
	return repository.WithTransaction(repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		log.Info("Cleaning existing data")
		tables := []string{
			"inventory_movements", "inventory_reservations", "audit_logs",
			"items", "item_types", "locations", "users",
		}
		for _, table := range tables {
			if _, err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
				return fmt.Errorf("truncate %s: %w", table, err)
			}
		}

		log.Info("Seeding users")
		userIDs := map[string]int{}
		for _, u := range []struct{ username, email, password, role string }{
			{"admin", "admin@inventory.com", "admin123", "admin"},
			{"staff", "staff@inventory.com", "user123", "user"},
		} {
			hash, err := security.HashPassword(u.password)
			if err != nil {
				return err
			}
			var id int
			if _, err := tx.Insert("users").
				Rows(goqu.Record{
					"username":        u.username,
					"email":           u.email,
					"hashed_password": hash,
					"role":            u.role,
				}).
				Returning("id").Executor().ScanVal(&id); err != nil {
				return fmt.Errorf("insert user %s: %w", u.username, err)
			}
			userIDs[u.username] = id
		}

		log.Info("Seeding locations")
		locationIDs := map[string]int{}
		for _, l := range []struct{ name, description string }{
			{"Main Warehouse", "Primary bulk storage"},
			{"Kitchen", "Production area"},
			{"Bakery Station", "Baking and prep area"},
			{"Cold Storage", "Refrigerated ingredients"},
		} {
			var id int
			if _, err := tx.Insert("locations").
				Rows(goqu.Record{
					"name":        l.name,
					"description": l.description,
					"status":      "active",
					"version":     1,
				}).
				Returning("id").Executor().ScanVal(&id); err != nil {
				return fmt.Errorf("insert location %s: %w", l.name, err)
			}
			locationIDs[l.name] = id
		}

		log.Info("Seeding items")
		itemIDs := map[string]int{}
		for _, i := range []seedItem{
			{"ING-001", "Flour - All Purpose", "50lb bag", "bag", "Baking", "ingredient"},
			{"ING-002", "Sugar - Granulated", "25lb bag", "bag", "Baking", "ingredient"},
			{"ING-003", "Yeast", "1lb pack", "pcs", "Baking", "ingredient"},
			{"ING-004", "Salt", "5lb box", "box", "Baking", "ingredient"},
			{"ING-005", "Butter - Unsalted", "1lb block", "lb", "Dairy", "ingredient"},
			{"ING-006", "Milk - Whole", "1 gallon", "l", "Dairy", "ingredient"},
			{"ING-007", "Eggs", "30 count tray", "pcs", "Dairy", "ingredient"},
			{"PKG-001", "Cookie Box", "Small dozen box", "pcs", "Packaging", "ingredient"},
			{"PKG-002", "Bread Bag", "Plastic bag for loaves", "pcs", "Packaging", "ingredient"},
			{"PRD-001", "Choc Chip Cookies", "Dozen cookies", "pcs", "Baking", "finished_good"},
			{"PRD-002", "Sourdough Loaf", "Fresh baked loaf", "pcs", "Baking", "finished_good"},
		} {
			var id int
			if _, err := tx.Insert("items").
				Rows(goqu.Record{
					"sku":             i.sku,
					"name":            i.name,
					"description":     i.description,
					"unit_of_measure": i.unit,
					"category":        i.category,
					"type":            i.kind,
					"status":          "active",
				}).
				Returning("id").Executor().ScanVal(&id); err != nil {
				return fmt.Errorf("insert item %s: %w", i.sku, err)
			}
			itemIDs[i.sku] = id
		}

		log.Info("Seeding movement history")
		movements := []seedMovement{
			{"ING-001", "", "Main Warehouse", "100", "receipt", "admin", "PO-001", "Initial Stock", 30},
			{"ING-002", "", "Main Warehouse", "50", "receipt", "admin", "PO-001", "Initial Stock", 30},
			{"ING-005", "", "Cold Storage", "200", "receipt", "admin", "PO-002", "Dairy Order", 29},
			{"ING-006", "", "Cold Storage", "50", "receipt", "admin", "PO-002", "Dairy Order", 29},
			{"PKG-001", "", "Main Warehouse", "500", "receipt", "admin", "PO-003", "Packaging", 28},
			{"ING-001", "Main Warehouse", "Kitchen", "10", "transfer", "staff", "TR-001", "Weekly Prep", 14},
			{"ING-002", "Main Warehouse", "Kitchen", "5", "transfer", "staff", "TR-001", "Weekly Prep", 14},
			{"ING-005", "Cold Storage", "Kitchen", "20", "transfer", "staff", "TR-001", "Weekly Prep", 14},
			{"ING-001", "Kitchen", "", "5", "consumption", "staff", "BATCH-101", "Cookie Batch", 7},
			{"ING-002", "Kitchen", "", "2", "consumption", "staff", "BATCH-101", "Cookie Batch", 7},
			{"ING-005", "Kitchen", "", "5", "consumption", "staff", "BATCH-101", "Cookie Batch", 7},
			{"PRD-001", "", "Bakery Station", "50", "receipt", "staff", "BATCH-101", "Cookies Produced", 7},
			{"PRD-001", "Bakery Station", "", "10", "consumption", "staff", "ORD-501", "Customer Order", 2},
			{"PKG-001", "Main Warehouse", "", "10", "consumption", "staff", "ORD-501", "Packaging Used", 2},
			{"ING-006", "Cold Storage", "", "2", "adjustment", "admin", "ADJ-001", "Expired Milk", 1},
		}
		for _, m := range movements {
			record := goqu.Record{
				"item_id":          itemIDs[m.sku],
				"quantity":         m.qty,
				"movement_type":    m.kind,
				"user_id":          userIDs[m.user],
				"reference_number": m.reference,
				"notes":            m.notes,
				"created_at":       time.Now().AddDate(0, 0, -m.daysAgo),
			}
			if m.from != "" {
				record["from_location_id"] = locationIDs[m.from]
			}
			if m.to != "" {
				record["to_location_id"] = locationIDs[m.to]
			}
			if _, err := tx.Insert("inventory_movements").Rows(record).Executor().Exec(); err != nil {
				return fmt.Errorf("insert movement %s %s: %w", m.kind, m.sku, err)
			}
		}

		log.Info("Seeding reservations")
		for _, r := range []struct {
			sku, location, qty, reference string
			ttl                           time.Duration
		}{
			{"PRD-001", "Bakery Station", "20", "ORD-502", 48 * time.Hour},
			{"ING-001", "Main Warehouse", "5", "ORD-503", 120 * time.Hour},
		} {
			if _, err := tx.Insert("inventory_reservations").
				Rows(goqu.Record{
					"item_id":         itemIDs[r.sku],
					"location_id":     locationIDs[r.location],
					"quantity":        r.qty,
					"order_reference": r.reference,
					"expires_at":      time.Now().Add(r.ttl),
					"status":          "active",
				}).Executor().Exec(); err != nil {
				return fmt.Errorf("insert reservation %s: %w", r.reference, err)
			}
		}

		return nil
	})
}
