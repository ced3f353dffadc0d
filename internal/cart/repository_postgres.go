package cart

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// PostgresRepository stores each user's cart as one jsonb snapshot row.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) (Cart, error) {
	var raw sql.NullString
	err := r.db.QueryRow(`SELECT snapshot FROM carts WHERE "userId" = $1`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return Cart{Items: []LineItem{}}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	if !raw.Valid || raw.String == "" {
		return Cart{Items: []LineItem{}}, nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw.String), &c); err != nil {
		// corrupt snapshot degrades to an empty cart, never an error
		log.Warn().Err(err).Int("user_id", userID).Msg("corrupt cart snapshot, resetting")
		return Cart{Items: []LineItem{}}, nil
	}
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	return c, nil
}

func (r *PostgresRepository) Save(userID int, c Cart) error {
	snapshot, err := json.Marshal(c)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = r.db.Exec(`INSERT INTO carts ("userId", snapshot, "updateAt") VALUES ($1,$2,$3)
        ON CONFLICT ("userId") DO UPDATE SET snapshot = $2, "updateAt" = $3`,
		userID, string(snapshot), now)
	return err
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM carts WHERE "userId" = $1`, userID)
	return err
}
