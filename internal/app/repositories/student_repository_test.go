package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
)

func TestStudentRepository_CreateStudent(t *testing.T) {
	tests := []struct {
		name      string
		student   *models.Student
		setupMock func(mock pgxmock.PgxPoolIface)
		wantID    int64
		wantErr   error
	}{
		{
			name: "successful insert",
			student: &models.Student{
				Name:           "Jordan Smith",
				Email:          "jordan@example.com",
				HashedPassword: "hashed",
			},
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO students`).
					WithArgs("Jordan Smith", "jordan@example.com", "hashed").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			wantID: 7,
		},
		{
			name: "duplicate email",
			student: &models.Student{
				Name:           "Jordan Smith",
				Email:          "jordan@example.com",
				HashedPassword: "hashed",
			},
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO students`).
					WithArgs("Jordan Smith", "jordan@example.com", "hashed").
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"})
			},
			wantErr: apperrors.ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewStudentRepository(mock)
			id, err := repo.CreateStudent(context.Background(), tt.student)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStudentRepository_GetStudentByEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      *models.Student
		wantErr   error
	}{
		{
			name:  "found",
			email: "jordan@example.com",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "email", "hashed_password"}).
					AddRow(int64(3), "Jordan Smith", "jordan@example.com", "hashed")
				mock.ExpectQuery(`SELECT id, name, email, hashed_password FROM students WHERE email =`).
					WithArgs("jordan@example.com").
					WillReturnRows(rows)
			},
			want: &models.Student{
				ID:             3,
				Name:           "Jordan Smith",
				Email:          "jordan@example.com",
				HashedPassword: "hashed",
			},
		},
		{
			name:  "not found",
			email: "nobody@example.com",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, email, hashed_password FROM students WHERE email =`).
					WithArgs("nobody@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: apperrors.ErrStudentNotFound,
		},
		{
			name:  "case sensitive lookup misses different casing",
			email: "Jordan@Example.com",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, email, hashed_password FROM students WHERE email =`).
					WithArgs("Jordan@Example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: apperrors.ErrStudentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewStudentRepository(mock)
			got, err := repo.GetStudentByEmail(context.Background(), tt.email)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStudentRepository_EmailExists(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      bool
		wantErr   bool
	}{
		{
			name: "exists",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT 1 FROM students WHERE email =`).
					WithArgs("jordan@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
			},
			want: true,
		},
		{
			name: "does not exist",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT 1 FROM students WHERE email =`).
					WithArgs("jordan@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			want: false,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT 1 FROM students WHERE email =`).
					WithArgs("jordan@example.com").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewStudentRepository(mock)
			got, err := repo.EmailExists(context.Background(), "jordan@example.com")

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStudentRepository_ListStudents(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "name", "email", "hashed_password"}).
		AddRow(int64(1), "Jordan Smith", "jordan@example.com", "h1").
		AddRow(int64(2), "Amira Hassan", "amira@example.com", "h2")
	mock.ExpectQuery(`SELECT id, name, email, hashed_password FROM students ORDER BY id ASC`).
		WillReturnRows(rows)

	repo := NewStudentRepository(mock)
	students, err := repo.ListStudents(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Jordan Smith", students[0].Name)
	assert.Equal(t, int64(2), students[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}
