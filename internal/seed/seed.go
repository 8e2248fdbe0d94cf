package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/coursegrid/coursegrid/internal/app/models"
	appRepos "github.com/coursegrid/coursegrid/internal/app/repositories"
)

// defaultCourses is the catalog installed on first startup. Course
// creation has no public endpoint, so this is the only write path
// into the courses table.
var defaultCourses = []appModels.Course{
	{
		Name:        "Data Structures",
		Instructor:  "Dr. Anita Rao",
		Description: "Arrays, linked lists, trees, graphs and the algorithms that operate on them.",
	},
	{
		Name:        "Operating Systems",
		Instructor:  "Prof. Daniel Mwangi",
		Description: "Processes, scheduling, memory management and file systems.",
	},
	{
		Name:        "Database Systems",
		Instructor:  "Dr. Elif Kaya",
		Description: "Relational modelling, SQL, transactions and query processing.",
	},
	{
		Name:        "Computer Networks",
		Instructor:  "Prof. Laura Chen",
		Description: "Protocol layering, routing, congestion control and network programming.",
	},
	{
		Name:        "Machine Learning",
		Instructor:  "Dr. Mateus Silva",
		Description: "Supervised and unsupervised learning, model evaluation and practice.",
	},
}

// CreateDefaultData inserts the default course catalog if it doesn't
// exist. Existing courses with the same name are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default course catalog...")
	var finalErr error

	for i := range defaultCourses {
		course := defaultCourses[i]
		id, err := courseRepo.CreateCourse(ctx, &course)
		if err != nil {
			lgr.Error().Err(err).Str("course", course.Name).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if id > 0 {
			lgr.Info().Int64("courseId", id).Str("course", course.Name).Msg("Default course created")
		}
	}

	return finalErr
}
