package ledger

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/ogarmory/armory-backend/internal/cart"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(userID int, rec PurchaseRecord) (PurchaseRecord, error) {
	itemsJSON, err := json.Marshal(rec.Items)
	if err != nil {
		return PurchaseRecord{}, err
	}

	err = r.db.QueryRow(`INSERT INTO purchases ("userId", items, total, method, "createdAt")
        VALUES ($1,$2,$3,$4,$5)
        RETURNING "purchaseId"`,
		userID, string(itemsJSON), rec.Total, rec.Method, rec.Timestamp).Scan(&rec.ID)
	if err != nil {
		return PurchaseRecord{}, err
	}
	return rec, nil
}

// ListByIDs returns purchases matching the given ids, ordered by the
// sequence of ids in the slice. An empty slice yields an immediate empty
// result.
func (r *PostgresRepository) ListByIDs(ids []int) ([]PurchaseRecord, error) {
	if len(ids) == 0 {
		return []PurchaseRecord{}, nil
	}

	rows, err := r.db.Query(`SELECT "purchaseId", items, total, method, "createdAt"
        FROM purchases
        WHERE "purchaseId" = ANY($1::int[])
        ORDER BY array_position($1::int[], "purchaseId")`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PurchaseRecord, 0, len(ids))
	for rows.Next() {
		var rec PurchaseRecord
		var itemsJSON []byte
		if err := rows.Scan(&rec.ID, &itemsJSON, &rec.Total, &rec.Method, &rec.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &rec.Items); err != nil {
			// corrupt items blob degrades to an empty snapshot, never an error
			log.Warn().Err(err).Int("purchase_id", rec.ID).Msg("corrupt purchase items snapshot")
			rec.Items = []cart.LineItem{}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) HasPurchased(userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM purchases WHERE "userId" = $1)`, userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepository) Reset(userID int) error {
	_, err := r.db.Exec(`DELETE FROM purchases WHERE "userId" = $1`, userID)
	return err
}
