package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jrsteele09/go-gym-server/gym"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/storage/postgres"
	"github.com/jrsteele09/go-gym-server/users"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestUserRepoGet(t *testing.T) {
	ctx := context.Background()

	t.Run("null membership", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE ssn = $1`)).
			WithArgs("S1").
			WillReturnRows(sqlmock.NewRows([]string{"ssn", "first_name", "last_name", "password_hash", "membership_type"}).
				AddRow("S1", "Jane", "Doe", "hash", nil))

		u, err := postgres.NewUserRepo(db).Get(ctx, "S1")
		require.NoError(t, err)
		require.Equal(t, "Jane", u.FirstName)
		require.Empty(t, u.MembershipType)
		require.Equal(t, users.RoleMember, u.Role())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE ssn = $1`)).
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows([]string{"ssn", "first_name", "last_name", "password_hash", "membership_type"}))

		_, err := postgres.NewUserRepo(db).Get(ctx, "NOPE")
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUserRepoInsertErrors(t *testing.T) {
	ctx := context.Background()
	user := &users.User{SSN: "S1", FirstName: "Jane", LastName: "Doe", PasswordHash: "hash", MembershipType: "zz"}

	tests := []struct {
		name string
		code pq.ErrorCode
		want error
	}{
		{"duplicate", "23505", apperrors.ErrAlreadyExists},
		{"unknown membership", "23503", apperrors.ErrInvalidReference},
		{"check", "23514", apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
				WithArgs("S1", "Jane", "Doe", "hash", "zz").
				WillReturnError(&pq.Error{Code: tt.code, Constraint: "users_constraint"})

			err := postgres.NewUserRepo(db).Insert(ctx, user)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserRepoUpdate(t *testing.T) {
	const query = `UPDATE users SET first_name = $2, last_name = $3, membership_type = $4,
		password_hash = COALESCE(NULLIF($5, ''), password_hash) WHERE ssn = $1`

	t.Run("keeps the hash when none is given", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("S1", "Jane", "Smith", nil, "").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := postgres.NewUserRepo(db).Update(context.Background(), &users.User{SSN: "S1", FirstName: "Jane", LastName: "Smith"})
		require.NoError(t, err)
	})

	t.Run("writes profile and hash together", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("S1", "Jane", "Smith", "aa", "new-hash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := postgres.NewUserRepo(db).Update(context.Background(), &users.User{
			SSN: "S1", FirstName: "Jane", LastName: "Smith", MembershipType: "aa", PasswordHash: "new-hash",
		})
		require.NoError(t, err)
	})
}

func TestDeleteErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM membership_types WHERE sign = $1`)).
			WithArgs("zz").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := postgres.NewMembershipRepo(db).Delete(ctx, "zz")
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("still referenced", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM membership_types WHERE sign = $1`)).
			WithArgs("em").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "users_membership_type_fkey"})

		err := postgres.NewMembershipRepo(db).Delete(ctx, "em")
		require.ErrorIs(t, err, apperrors.ErrInUse)
		require.NotErrorIs(t, err, apperrors.ErrInvalidReference)
	})

	t.Run("driver failure passes through", func(t *testing.T) {
		db, mock := setupMockDB(t)
		boom := errors.New("connection reset")
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM rooms WHERE id = $1`)).
			WithArgs(int64(7)).
			WillReturnError(boom)

		err := postgres.NewGymRepos(db).Rooms.Delete(ctx, 7)
		require.ErrorIs(t, err, boom)
	})
}

func TestRevocationRegistry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(24 * time.Hour)

	t.Run("revoke", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO revoked_tokens (token, revoked_on, expires_at) VALUES ($1, $2, $3)`)).
			WithArgs("tok", now, expires).
			WillReturnResult(sqlmock.NewResult(1, 1))

		registry := postgres.NewRevocationRegistry(db, postgres.WithNowFunc(func() time.Time { return now }))
		require.NoError(t, registry.Revoke(ctx, "tok", expires))
	})

	t.Run("revoke twice", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO revoked_tokens`)).
			WithArgs("tok", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "revoked_tokens_token_key"})

		err := postgres.NewRevocationRegistry(db).Revoke(ctx, "tok", expires)
		require.ErrorIs(t, err, apperrors.ErrAlreadyRevoked)
	})

	t.Run("is revoked", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)`)).
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		revoked, err := postgres.NewRevocationRegistry(db).IsRevoked(ctx, "tok")
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("prune", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM revoked_tokens WHERE expires_at < $1`)).
			WithArgs(now).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := postgres.NewRevocationRegistry(db).Prune(ctx, now)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)
	})
}

func TestScheduleRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("insert returns id", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO room_schedules`)).
			WithArgs(int64(1), "2024-05-01", "08:00", "class", nil, "Yoga", false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		sc := &gym.Schedule{RoomID: 1, Date: "2024-05-01", Time: "08:00", BookingType: gym.BookingClass, CourseName: "Yoga"}
		require.NoError(t, postgres.NewGymRepos(db).Schedules.Insert(ctx, sc))
		require.Equal(t, int64(11), sc.ID)
	})

	t.Run("list by user", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM room_schedules WHERE user_ssn = $1`)).
			WithArgs("S1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "date", "time", "booking_type", "user_ssn", "course_name", "is_booked"}).
				AddRow(1, 1, "2024-05-01", "18:30", "private", "S1", nil, true))

		list, err := postgres.NewGymRepos(db).Schedules.ListByUser(ctx, "S1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, gym.BookingPrivate, list[0].BookingType)
		require.Equal(t, "18:30", list[0].Time)
		require.Empty(t, list[0].CourseName)
		require.True(t, list[0].IsBooked)
	})
}

func TestCourseRepoNullReferences(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses WHERE course_name = $1`)).
		WithArgs("Yoga").
		WillReturnRows(sqlmock.NewRows([]string{"course_name", "capacity", "is_special", "instructor_ssn", "room_id"}).
			AddRow("Yoga", 20, false, nil, nil))

	c, err := postgres.NewGymRepos(db).Courses.Get(context.Background(), "Yoga")
	require.NoError(t, err)
	require.Equal(t, 20, c.Capacity)
	require.Empty(t, c.InstructorID)
	require.Zero(t, c.RoomID)
}

func TestEnrollmentDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_courses`)).
		WithArgs("Yoga", "S1").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "user_courses_pkey"})

	err := postgres.NewGymRepos(db).Enrollments.Insert(context.Background(), &gym.Enrollment{CourseName: "Yoga", UserID: "S1"})
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}
