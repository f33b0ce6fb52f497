package auth

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the Bun-backed persistence surface for user records. It
// satisfies UserDirectory and adds transaction-scoped variants for
// callers that already hold a tx.
type Users interface {
	UserDirectory

	FindTx(ctx context.Context, tx bun.IDB, filter UserFilter) ([]*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
}

type users struct {
	repo repository.Repository[*User]
	db   *bun.DB
}

var (
	_ Users         = (*users)(nil)
	_ UserDirectory = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		repo: repo,
		db:   db,
	}
}

func (a *users) Find(ctx context.Context, filter UserFilter) ([]*User, error) {
	return a.FindTx(ctx, a.db, filter)
}

// FindTx queries by the unique key set the filter carries. A filter
// that names neither key set is rejected rather than matching the
// whole table.
func (a *users) FindTx(ctx context.Context, tx bun.IDB, filter UserFilter) ([]*User, error) {
	records := []*User{}
	q := tx.NewSelect().Model(&records)

	switch {
	case filter.AccessTokenHash != "":
		q = q.Where("?TableAlias.access_token_hash = ?", filter.AccessTokenHash)
	case filter.Provider != "" && filter.ThirdPartyID != "":
		q = q.Where("?TableAlias.provider = ?", string(filter.Provider)).
			Where("?TableAlias.third_party_id = ?", filter.ThirdPartyID)
	default:
		return nil, errors.New("user filter must select a unique key", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	if err := q.Scan(ctx); err != nil {
		if err == sql.ErrNoRows {
			return []*User{}, nil
		}
		return nil, err
	}

	return records, nil
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	prepareUserDefaults(record)
	return a.repo.CreateTx(ctx, tx, record)
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.Role == "" {
		record.Role = RoleUser
	}

	if record.Provider == "" && record.AccessTokenHash != "" {
		record.Provider = ProviderAnonymous
	}
}
