package infra

import (
	"fmt"

	"gorm.io/gorm"

	dbm "tripdeck/internal/models/db_models"
)

// Migrate creates the tables and a trigger that publishes row changes on the
// notify channel, so every instance can drop its cached schedule.
func Migrate(db *gorm.DB, channel string) error {
	if err := db.AutoMigrate(&dbm.Day{}, &dbm.ItineraryItem{}, &dbm.Expense{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	fn := fmt.Sprintf(`
CREATE OR REPLACE FUNCTION tripdeck_notify_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('%s', TG_TABLE_NAME);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`, channel)
	if err := db.Exec(fn).Error; err != nil {
		return fmt.Errorf("create notify function: %w", err)
	}

	for _, table := range []string{"days", "itinerary_items", "expenses"} {
		stmts := []string{
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_notify ON %s`, table, table),
			fmt.Sprintf(`CREATE TRIGGER %s_notify AFTER INSERT OR UPDATE OR DELETE ON %s
	FOR EACH STATEMENT EXECUTE FUNCTION tripdeck_notify_change()`, table, table),
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("notify trigger on %s: %w", table, err)
			}
		}
	}
	return nil
}
