package gym_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jrsteele09/go-gym-server/gym"
	fakegymrepo "github.com/jrsteele09/go-gym-server/gym/repofake"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/internal/utils"
	"github.com/jrsteele09/go-gym-server/users"
	fakeuserrepo "github.com/jrsteele09/go-gym-server/users/repofake"
	"github.com/stretchr/testify/require"
)

const memberSSN = "19900101-1234"

type testFixture struct {
	ctx     context.Context
	service *gym.Service
	repos   gym.Repos
	room    *gym.Room
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ctx := context.Background()
	userRepo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, userRepo.Insert(ctx, &users.User{SSN: memberSSN, FirstName: "Jane", LastName: "Doe", MembershipType: "em"}))

	repos := fakegymrepo.NewRepos()
	service, err := gym.NewService(repos, userRepo)
	require.NoError(t, err)

	room := &gym.Room{RoomName: "Studio A"}
	require.NoError(t, service.CreateRoom(ctx, room))
	require.NotZero(t, room.ID)

	return &testFixture{ctx: ctx, service: service, repos: repos, room: room}
}

func TestNewServiceRequiresRepos(t *testing.T) {
	_, err := gym.NewService(gym.Repos{}, fakeuserrepo.NewFakeUserRepo())
	require.Error(t, err)

	_, err = gym.NewService(fakegymrepo.NewRepos(), nil)
	require.Error(t, err)
}

func TestRooms(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("name required", func(t *testing.T) {
		err := f.service.CreateRoom(f.ctx, &gym.Room{RoomName: " "})
		require.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("name too long", func(t *testing.T) {
		err := f.service.CreateRoom(f.ctx, &gym.Room{RoomName: strings.Repeat("x", 21)})
		require.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("update", func(t *testing.T) {
		r, err := f.service.UpdateRoom(f.ctx, f.room.ID, gym.RoomUpdate{RoomName: utils.Ptr("Studio B")})
		require.NoError(t, err)
		require.Equal(t, "Studio B", r.RoomName)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := f.service.GetRoom(f.ctx, 999)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCourses(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.service.CreateInstructor(f.ctx, &gym.Instructor{SSN: "INS1", FirstName: "Ann", LastName: "Lee", Phone: "+46 70 123 45 67"}))

	t.Run("valid course", func(t *testing.T) {
		err := f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Yoga", Capacity: 20, InstructorID: "INS1", RoomID: f.room.ID})
		require.NoError(t, err)
	})

	t.Run("duplicate", func(t *testing.T) {
		err := f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Yoga", Capacity: 5})
		require.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})

	t.Run("capacity out of range", func(t *testing.T) {
		for _, c := range []int{-1, 100} {
			err := f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Spin", Capacity: c})
			require.ErrorIs(t, err, apperrors.ErrValidation)
		}
	})

	t.Run("unknown instructor", func(t *testing.T) {
		err := f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Spin", Capacity: 5, InstructorID: "NOPE"})
		require.ErrorIs(t, err, apperrors.ErrInvalidReference)
	})

	t.Run("unknown room", func(t *testing.T) {
		err := f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Spin", Capacity: 5, RoomID: 42})
		require.ErrorIs(t, err, apperrors.ErrInvalidReference)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		c, err := f.service.UpdateCourse(f.ctx, "Yoga", gym.CourseUpdate{Capacity: utils.Ptr(25)})
		require.NoError(t, err)
		require.Equal(t, 25, c.Capacity)
		require.Equal(t, "INS1", c.InstructorID)
	})
}

func TestInstructorValidation(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.CreateInstructor(f.ctx, &gym.Instructor{SSN: "INS2", FirstName: "Bo"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	err = f.service.CreateInstructor(f.ctx, &gym.Instructor{SSN: "INS2", FirstName: "Bo", LastName: "Ek", Phone: "call me"})
	require.Error(t, err)

	_, err = f.service.UpdateInstructor(f.ctx, "NOPE", gym.InstructorUpdate{})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSchedules(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Yoga", Capacity: 10}))

	tests := []struct {
		name     string
		schedule gym.Schedule
		wantErr  error
	}{
		{"cleaning", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "07:00", BookingType: gym.BookingCleaning}, nil},
		{"class", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "08:00", BookingType: gym.BookingClass, CourseName: "Yoga"}, nil},
		{"private", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "09:00", BookingType: gym.BookingPrivate, UserID: memberSSN}, nil},
		{"bad type", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "09:00", BookingType: "party"}, apperrors.ErrValidation},
		{"bad date", gym.Schedule{RoomID: f.room.ID, Date: "01/05/2024", Time: "09:00", BookingType: gym.BookingCleaning}, apperrors.ErrValidation},
		{"bad time", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "25:00", BookingType: gym.BookingCleaning}, apperrors.ErrValidation},
		{"unknown room", gym.Schedule{RoomID: 42, Date: "2024-05-01", Time: "09:00", BookingType: gym.BookingCleaning}, apperrors.ErrInvalidReference},
		{"class without course", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "09:00", BookingType: gym.BookingClass}, apperrors.ErrValidation},
		{"class unknown course", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "09:00", BookingType: gym.BookingClass, CourseName: "Box"}, apperrors.ErrInvalidReference},
		{"private unknown user", gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "09:00", BookingType: gym.BookingPrivate, UserID: "NOPE"}, apperrors.ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := tt.schedule
			err := f.service.CreateSchedule(f.ctx, &sc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, sc.ID)
		})
	}

	all, err := f.service.ListSchedules(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestBookRoom(t *testing.T) {
	f := setupTestFixture(t)
	caller := &users.User{SSN: memberSSN}

	sc := &gym.Schedule{RoomID: f.room.ID, Date: "2024-05-02", Time: "18:30", BookingType: gym.BookingPrivate, UserID: "someone-else"}
	require.NoError(t, f.service.BookRoom(f.ctx, caller, sc))
	require.True(t, sc.IsBooked)
	require.Equal(t, memberSSN, sc.UserID)

	mine, err := f.service.ListUserSchedules(f.ctx, memberSSN)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, sc.ID, mine[0].ID)

	require.NoError(t, f.service.DeleteSchedule(f.ctx, sc.ID))
	require.ErrorIs(t, f.service.DeleteSchedule(f.ctx, sc.ID), apperrors.ErrNotFound)
}

func TestEnrollments(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Yoga", Capacity: 10}))
	require.NoError(t, f.service.CreateCourse(f.ctx, &gym.Course{CourseName: "Spin", Capacity: 10}))

	_, err := f.service.Enroll(f.ctx, "Yoga", memberSSN)
	require.NoError(t, err)

	_, err = f.service.Enroll(f.ctx, "Yoga", memberSSN)
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	require.Contains(t, err.Error(), "already enrolled")

	_, err = f.service.Enroll(f.ctx, "Box", memberSSN)
	require.ErrorIs(t, err, apperrors.ErrInvalidReference)

	_, err = f.service.Enroll(f.ctx, "Spin", "NOPE")
	require.ErrorIs(t, err, apperrors.ErrInvalidReference)

	courses, err := f.service.ListUserCourses(f.ctx, memberSSN)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "Yoga", courses[0].CourseName)

	require.NoError(t, f.service.Unenroll(f.ctx, "Yoga", memberSSN))
	courses, err = f.service.ListUserCourses(f.ctx, memberSSN)
	require.NoError(t, err)
	require.Empty(t, courses)
}

func TestFeedback(t *testing.T) {
	f := setupTestFixture(t)
	sc := &gym.Schedule{RoomID: f.room.ID, Date: "2024-05-01", Time: "07:00", BookingType: gym.BookingCleaning}
	require.NoError(t, f.service.CreateSchedule(f.ctx, sc))

	valid := gym.Feedback{RoomID: f.room.ID, UserID: memberSSN, ScheduleID: sc.ID, Score: 8.5, Comment: "great"}

	t.Run("valid", func(t *testing.T) {
		fb := valid
		require.NoError(t, f.service.CreateFeedback(f.ctx, &fb))
		require.NotZero(t, fb.ID)

		got, err := f.service.GetFeedback(f.ctx, fb.ID)
		require.NoError(t, err)
		require.Equal(t, "great", got.Comment)
	})

	t.Run("score out of range", func(t *testing.T) {
		for _, score := range []float64{-0.1, 10} {
			fb := valid
			fb.Score = score
			require.ErrorIs(t, f.service.CreateFeedback(f.ctx, &fb), apperrors.ErrValidation)
		}
	})

	t.Run("comment too long", func(t *testing.T) {
		fb := valid
		fb.Comment = strings.Repeat("x", 201)
		require.ErrorIs(t, f.service.CreateFeedback(f.ctx, &fb), apperrors.ErrValidation)
	})

	t.Run("unknown references", func(t *testing.T) {
		for _, mutate := range []func(*gym.Feedback){
			func(fb *gym.Feedback) { fb.RoomID = 42 },
			func(fb *gym.Feedback) { fb.UserID = "NOPE" },
			func(fb *gym.Feedback) { fb.ScheduleID = 42 },
		} {
			fb := valid
			mutate(&fb)
			require.ErrorIs(t, f.service.CreateFeedback(f.ctx, &fb), apperrors.ErrInvalidReference)
		}
	})
}
