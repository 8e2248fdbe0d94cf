package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
)

func TestCourseRepository_GetCourseByName(t *testing.T) {
	tests := []struct {
		name       string
		courseName string
		setupMock  func(mock pgxmock.PgxPoolIface)
		want       *models.Course
		wantErr    error
	}{
		{
			name:       "found",
			courseName: "Data Structures",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "instructor", "description"}).
					AddRow(int64(1), "Data Structures", "Dr. Anita Rao", "Trees and graphs.")
				mock.ExpectQuery(`SELECT id, name, instructor, description FROM courses WHERE name =`).
					WithArgs("Data Structures").
					WillReturnRows(rows)
			},
			want: &models.Course{
				ID:          1,
				Name:        "Data Structures",
				Instructor:  "Dr. Anita Rao",
				Description: "Trees and graphs.",
			},
		},
		{
			name:       "not found",
			courseName: "Quantum Basket Weaving",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, instructor, description FROM courses WHERE name =`).
					WithArgs("Quantum Basket Weaving").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: apperrors.ErrCourseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCourseRepository(mock)
			got, err := repo.GetCourseByName(context.Background(), tt.courseName)

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

func TestCourseRepository_GetCourseByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, instructor, description FROM courses WHERE id =`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewCourseRepository(mock)
	_, err = repo.GetCourseByID(context.Background(), 99)
	require.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestCourseRepository_GetAllCourses(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "name", "instructor", "description"}).
		AddRow(int64(1), "Data Structures", "Dr. Anita Rao", "Trees and graphs.").
		AddRow(int64(2), "Operating Systems", "Prof. Daniel Mwangi", "Processes and scheduling.")
	mock.ExpectQuery(`SELECT id, name, instructor, description FROM courses ORDER BY id ASC`).
		WillReturnRows(rows)

	repo := NewCourseRepository(mock)
	courses, err := repo.GetAllCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Operating Systems", courses[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestCourseRepository_CreateCourse(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantID    int64
	}{
		{
			name: "inserts a new course",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO courses`).
					WithArgs("Data Structures", "Dr. Anita Rao", "Trees and graphs.").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
			},
			wantID: 4,
		},
		{
			name: "existing course is left untouched",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO courses`).
					WithArgs("Data Structures", "Dr. Anita Rao", "Trees and graphs.").
					WillReturnError(pgx.ErrNoRows)
			},
			wantID: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCourseRepository(mock)
			id, err := repo.CreateCourse(context.Background(), &models.Course{
				Name:        "Data Structures",
				Instructor:  "Dr. Anita Rao",
				Description: "Trees and graphs.",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
