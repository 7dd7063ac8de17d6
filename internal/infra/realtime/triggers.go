package realtime

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Tabelas observadas pelo feed.
var watchedTables = []string{"leads", "system_notifications"}

// EnsureTriggers instala a função de notify e os triggers. Idempotente.
// O pg_notify aceita até 8000 bytes; acima disso mandamos RESYNC.
func EnsureTriggers(ctx context.Context, db *sql.DB, channel string) error {
	fn := fmt.Sprintf(`
		CREATE OR REPLACE FUNCTION notify_sales_os_change() RETURNS trigger AS $$
		DECLARE
			payload text;
		BEGIN
			payload := json_build_object(
				'table', TG_TABLE_NAME,
				'type', TG_OP,
				'record', CASE WHEN TG_OP = 'DELETE' THEN NULL ELSE row_to_json(NEW) END,
				'old_record', CASE WHEN TG_OP = 'INSERT' THEN NULL ELSE row_to_json(OLD) END
			)::text;

			IF octet_length(payload) > 7900 THEN
				payload := json_build_object('table', TG_TABLE_NAME, 'type', 'RESYNC')::text;
			END IF;

			PERFORM pg_notify(%s, payload);
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql;
	`, pq.QuoteLiteral(channel))

	if _, err := db.ExecContext(ctx, fn); err != nil {
		return fmt.Errorf("erro ao criar função de notify: %w", err)
	}

	for _, table := range watchedTables {
		trigger := pq.QuoteIdentifier("sales_os_notify_" + table)
		stmt := fmt.Sprintf(`
			DROP TRIGGER IF EXISTS %[1]s ON %[2]s;
			CREATE TRIGGER %[1]s
				AFTER INSERT OR UPDATE OR DELETE ON %[2]s
				FOR EACH ROW EXECUTE FUNCTION notify_sales_os_change();
		`, trigger, pq.QuoteIdentifier(table))

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao criar trigger em %s: %w", table, err)
		}
	}
	return nil
}
