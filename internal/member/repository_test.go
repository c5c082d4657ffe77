package member

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberCols() []string {
	return []string{
		"id", "gym_id", "trainer_id", "name", "email", "phone", "membership_type",
		"membership_status", "last_attendance", "profile_image", "password_hash", "created_at",
	}
}

func TestCreateMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`INSERT INTO members.*RETURNING.*`).
		WithArgs(2, (*int)(nil), "Alice Smith", "alice@example.com", "", "basic", "active").
		WillReturnRows(sqlmock.NewRows(memberCols()).
			AddRow(7, 2, nil, "Alice Smith", "alice@example.com", "", "basic",
				"active", nil, nil, nil, time.Now()))

	m, err := repo.Create(context.Background(), &Member{
		GymID:            2,
		Name:             "Alice Smith",
		Email:            "alice@example.com",
		MembershipType:   "basic",
		MembershipStatus: StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, m.ID)
	assert.Nil(t, m.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMemberDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`INSERT INTO members.*`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.Create(context.Background(), &Member{
		GymID: 2,
		Name:  "Alice Smith",
		Email: "alice@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGymName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT name FROM gyms WHERE id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Iron Temple"))

	name, err := repo.GymName(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Iron Temple", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	hash := "hash"
	mock.ExpectQuery(`SELECT id, gym_id, trainer_id.*FROM members WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(memberCols()).
			AddRow(7, 2, nil, "Alice Smith", "alice@example.com", "555", "premium",
				"active", nil, nil, hash, time.Now()))

	m, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 7, m.ID)
	assert.Nil(t, m.TrainerID)
	require.NotNil(t, m.PasswordHash)
	assert.Equal(t, "hash", *m.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT id, gym_id.*FROM members.*`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(memberCols()))

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT id, gym_id.*WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(memberCols()).
			AddRow(7, 2, 3, "Alice Smith", "alice@example.com", "555", "premium",
				"active", nil, nil, nil, time.Now()))

	m, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, m.TrainerID)
	assert.Equal(t, 3, *m.TrainerID)
	assert.Nil(t, m.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectExec(`UPDATE members SET password_hash = \$1 WHERE id = \$2`).
		WithArgs("new-hash", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdatePassword(context.Background(), 7, "new-hash")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
