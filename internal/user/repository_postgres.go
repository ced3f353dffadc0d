package user

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `"userId", email, password, "firstName", "lastName", "storefrontToken", "purchaseId", "createAt", "updateAt"`

func scanUser(row *sql.Row) (User, error) {
	var u User
	var token sql.NullString
	var purchaseIDs pq.Int64Array
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &token, &purchaseIDs, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if token.Valid {
		u.StorefrontToken = token.String
	}
	for _, id := range purchaseIDs {
		u.PurchaseIDs = append(u.PurchaseIDs, int(id))
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE "userId" = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (email, password, "firstName", "lastName", "storefrontToken", "purchaseId", "createAt", "updateAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING "userId"`,
		u.Email, u.Password, u.FirstName, u.LastName, u.StorefrontToken, pq.Array(u.PurchaseIDs), u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) AppendPurchaseID(id int, purchaseID int) (User, error) {
	_, err := r.db.Exec(`UPDATE users SET "purchaseId" = array_append(coalesce("purchaseId", ARRAY[]::integer[]), $1) WHERE "userId" = $2`, purchaseID, id)
	if err != nil {
		return User{}, err
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) ClearPurchaseIDs(id int) error {
	res, err := r.db.Exec(`UPDATE users SET "purchaseId" = ARRAY[]::integer[] WHERE "userId" = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetStorefrontToken(id int, token string) error {
	res, err := r.db.Exec(`UPDATE users SET "storefrontToken" = $1 WHERE "userId" = $2`, token, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
