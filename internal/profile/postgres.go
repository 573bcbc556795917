package profile

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// DBPool is the subset of *pgxpool.Pool used by PostgresStore.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PostgresStore struct {
	pool DBPool
}

func NewPostgresStore(pool DBPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, phone string) (*UserProfile, error) {
	var p UserProfile
	err := s.pool.QueryRow(ctx, `
		SELECT phone, name, email, flat_no, building, area, city, pin_code
		FROM user_profiles
		WHERE phone=$1
	`, phone).Scan(&p.Phone, &p.Name, &p.Email, &p.FlatNo, &p.Building, &p.Area, &p.City, &p.PinCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select profile")
	}
	return &p, nil
}

func (s *PostgresStore) Save(ctx context.Context, p UserProfile) error {
	if p.Phone == "" {
		return ErrMissingPhone
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_profiles(phone, name, email, flat_no, building, area, city, pin_code)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (phone) DO UPDATE SET
			name=EXCLUDED.name,
			email=EXCLUDED.email,
			flat_no=EXCLUDED.flat_no,
			building=EXCLUDED.building,
			area=EXCLUDED.area,
			city=EXCLUDED.city,
			pin_code=EXCLUDED.pin_code,
			updated_at=now()
	`, p.Phone, p.Name, p.Email, p.FlatNo, p.Building, p.Area, p.City, p.PinCode)
	if err != nil {
		return errors.Wrap(err, "upsert profile")
	}
	return nil
}
