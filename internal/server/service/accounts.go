package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/passhash"
)

// Passwords longer than this are rejected before any hashing work happens;
// legitimate clients never send them. The bound counts characters, not bytes,
// so multibyte passwords are measured the way the client shows them.
const maxPasswordLength = 20

const tokenTTL = 24 * time.Hour

// AccountService implements registration, the login state machine (ban check,
// length bound, Argon2 verify with legacy-plaintext migration), token issuance
// and the token-gated account update.
type AccountService struct {
	repo      Repository
	jwtSecret []byte
}

func (a *AccountService) Register(ctx context.Context, accountID, password, name string, icon int) (models.SanitizedAccount, error) {
	if accountID == "" || password == "" {
		return models.SanitizedAccount{}, ErrMissingFields
	}
	if name == "" {
		name = accountID
	}
	phc, err := passhash.HashPassword(password)
	if err != nil {
		return models.SanitizedAccount{}, err
	}
	acc, err := a.repo.CreateAccount(ctx, accountID, phc, name, icon)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return models.SanitizedAccount{}, ErrDuplicateAccount
		}
		return models.SanitizedAccount{}, err
	}
	return acc.Sanitized(false), nil
}

// Login checks, in order: account existence, ban flag, password length bound,
// Argon2 verification, and finally plaintext equality for legacy rows. A
// plaintext match transparently re-hashes the credential before the login
// succeeds, so the stored value only ever gets stronger.
func (a *AccountService) Login(ctx context.Context, accountID, password string) (models.SanitizedAccount, error) {
	acc, err := a.repo.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.SanitizedAccount{}, ErrAccountNotFound
		}
		return models.SanitizedAccount{}, err
	}
	if acc.Banned {
		return models.SanitizedAccount{}, ErrBanned
	}
	if utf8.RuneCountInString(password) > maxPasswordLength {
		return models.SanitizedAccount{}, ErrInvalidCredential
	}

	match := false
	if passhash.IsEncoded(acc.Password) {
		ok, verr := passhash.VerifyPassword(acc.Password, password)
		match = verr == nil && ok
	}
	if !match && acc.Password == password {
		phc, herr := passhash.HashPassword(password)
		if herr != nil {
			return models.SanitizedAccount{}, herr
		}
		if err := a.repo.SetAccountPassword(ctx, accountID, phc); err != nil {
			return models.SanitizedAccount{}, err
		}
		match = true
	}
	if !match {
		return models.SanitizedAccount{}, ErrInvalidCredential
	}

	token, err := a.issueToken(acc.AccountID)
	if err != nil {
		return models.SanitizedAccount{}, err
	}
	if err := a.repo.SetAccountToken(ctx, accountID, token); err != nil {
		// The account can vanish between the read above and this write.
		if errors.Is(err, repository.ErrNotFound) {
			return models.SanitizedAccount{}, ErrAccountNotFound
		}
		return models.SanitizedAccount{}, err
	}
	acc.Token = token
	return acc.Sanitized(true), nil
}

// issueToken mints the signed 24-hour credential stored as the account's
// single active token. Issuing a new one invalidates the previous token for
// every later authorization check. The jti claim keeps two logins in the same
// second from minting the same token.
func (a *AccountService) issueToken(accountID string) (string, error) {
	claims := jwt.MapClaims{
		"aid": accountID,
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.jwtSecret)
}

// Update changes only the provided fields, and only when the presented token
// matches the account's stored one. Unknown account and token mismatch share
// one error.
func (a *AccountService) Update(ctx context.Context, accountID, token string, name *string, icon *int, password *string) error {
	if accountID == "" || token == "" {
		return ErrMissingFields
	}
	if password != nil {
		phc, err := passhash.HashPassword(*password)
		if err != nil {
			return err
		}
		password = &phc
	}
	if err := a.repo.UpdateAccount(ctx, accountID, token, name, icon, password); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}
	return nil
}

// AuthorizeForWrite gates score submissions: the account must exist, carry
// exactly the presented token, and not be banned. A missing account reports
// the same invalid-token error as a mismatch.
func (a *AccountService) AuthorizeForWrite(ctx context.Context, accountID, token string) (models.Account, error) {
	acc, err := a.repo.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Account{}, ErrInvalidToken
		}
		return models.Account{}, err
	}
	if acc.Token == "" || acc.Token != token {
		return models.Account{}, ErrInvalidToken
	}
	if acc.Banned {
		return models.Account{}, ErrBanned
	}
	return acc, nil
}
