package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

func (r *Repository) CreateAccount(ctx context.Context, accountID, password, name string, icon int) (models.Account, error) {
	acc := models.Account{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Password:  password,
		Name:      name,
		Icon:      icon,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts(id, account_id, password, name, icon, created_at) VALUES(?,?,?,?,?,?)`,
		acc.ID, acc.AccountID, acc.Password, acc.Name, acc.Icon, acc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, repository.ErrDuplicateAccount
		}
		return models.Account{}, err
	}
	return acc, nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (models.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, password, token, name, icon, banned, created_at FROM accounts WHERE account_id = ?`,
		accountID)
	var acc models.Account
	if err := row.Scan(&acc.ID, &acc.AccountID, &acc.Password, &acc.Token, &acc.Name, &acc.Icon, &acc.Banned, &acc.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, repository.ErrNotFound
		}
		return models.Account{}, err
	}
	return acc, nil
}

// SetAccountToken replaces the account's active token; the previous one stops
// authorizing writes from that point on.
func (r *Repository) SetAccountToken(ctx context.Context, accountID, token string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET token = ? WHERE account_id = ?`, token, accountID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *Repository) SetAccountPassword(ctx context.Context, accountID, password string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET password = ? WHERE account_id = ?`, password, accountID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// UpdateAccount applies the provided fields only when both the account id and
// the stored token match. A miss on either reports the same ErrNotFound so the
// caller cannot tell which condition failed.
func (r *Repository) UpdateAccount(ctx context.Context, accountID, token string, name *string, icon *int, password *string) error {
	set := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if name != nil {
		set = append(set, "name = ?")
		args = append(args, *name)
	}
	if icon != nil {
		set = append(set, "icon = ?")
		args = append(args, *icon)
	}
	if password != nil {
		set = append(set, "password = ?")
		args = append(args, *password)
	}
	if len(set) == 0 {
		// Nothing to change; still verify the account/token pair.
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE account_id = ? AND token = ? AND token != ''`, accountID, token).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	args = append(args, accountID, token)
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET `+strings.Join(set, ", ")+` WHERE account_id = ? AND token = ? AND token != ''`, args...)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *Repository) SetAccountBanned(ctx context.Context, accountID string, banned bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET banned = ? WHERE account_id = ?`, banned, accountID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, _ := res.RowsAffected()
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// The modernc driver exposes constraint violations only through the error
// text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
