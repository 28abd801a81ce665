package fakegymrepo

import (
	"context"
	"sync/atomic"

	"github.com/jrsteele09/go-gym-server/gym"
)

var (
	_ gym.InstructorRepo = (*FakeInstructorRepo)(nil)
	_ gym.RoomRepo       = (*FakeRoomRepo)(nil)
	_ gym.CourseRepo     = (*FakeCourseRepo)(nil)
	_ gym.ScheduleRepo   = (*FakeScheduleRepo)(nil)
	_ gym.EnrollmentRepo = (*FakeEnrollmentRepo)(nil)
	_ gym.FeedbackRepo   = (*FakeFeedbackRepo)(nil)
)

// NewRepos returns a full set of empty in-memory gym repos.
func NewRepos() gym.Repos {
	return gym.Repos{
		Instructors: NewFakeInstructorRepo(),
		Rooms:       NewFakeRoomRepo(),
		Courses:     NewFakeCourseRepo(),
		Schedules:   NewFakeScheduleRepo(),
		Enrollments: NewFakeEnrollmentRepo(),
		Feedback:    NewFakeFeedbackRepo(),
	}
}

type FakeInstructorRepo struct {
	rows *table[string, gym.Instructor]
}

func NewFakeInstructorRepo() *FakeInstructorRepo {
	return &FakeInstructorRepo{rows: newTable[string, gym.Instructor](lessString)}
}

func (r *FakeInstructorRepo) Get(_ context.Context, ssn string) (*gym.Instructor, error) {
	return r.rows.get(ssn)
}

func (r *FakeInstructorRepo) Insert(_ context.Context, i *gym.Instructor) error {
	return r.rows.insert(i.SSN, *i)
}

func (r *FakeInstructorRepo) Update(_ context.Context, i *gym.Instructor) error {
	return r.rows.update(i.SSN, *i)
}

func (r *FakeInstructorRepo) Delete(_ context.Context, ssn string) error {
	return r.rows.delete(ssn)
}

func (r *FakeInstructorRepo) List(_ context.Context) ([]*gym.Instructor, error) {
	return r.rows.list(nil), nil
}

type FakeRoomRepo struct {
	rows   *table[int64, gym.Room]
	nextID atomic.Int64
}

func NewFakeRoomRepo() *FakeRoomRepo {
	return &FakeRoomRepo{rows: newTable[int64, gym.Room](lessInt64)}
}

func (r *FakeRoomRepo) Get(_ context.Context, id int64) (*gym.Room, error) {
	return r.rows.get(id)
}

func (r *FakeRoomRepo) Insert(_ context.Context, room *gym.Room) error {
	room.ID = r.nextID.Add(1)
	return r.rows.insert(room.ID, *room)
}

func (r *FakeRoomRepo) Update(_ context.Context, room *gym.Room) error {
	return r.rows.update(room.ID, *room)
}

func (r *FakeRoomRepo) Delete(_ context.Context, id int64) error {
	return r.rows.delete(id)
}

func (r *FakeRoomRepo) List(_ context.Context) ([]*gym.Room, error) {
	return r.rows.list(nil), nil
}

type FakeCourseRepo struct {
	rows *table[string, gym.Course]
}

func NewFakeCourseRepo() *FakeCourseRepo {
	return &FakeCourseRepo{rows: newTable[string, gym.Course](lessString)}
}

func (r *FakeCourseRepo) Get(_ context.Context, name string) (*gym.Course, error) {
	return r.rows.get(name)
}

func (r *FakeCourseRepo) Insert(_ context.Context, c *gym.Course) error {
	return r.rows.insert(c.CourseName, *c)
}

func (r *FakeCourseRepo) Update(_ context.Context, c *gym.Course) error {
	return r.rows.update(c.CourseName, *c)
}

func (r *FakeCourseRepo) Delete(_ context.Context, name string) error {
	return r.rows.delete(name)
}

func (r *FakeCourseRepo) List(_ context.Context) ([]*gym.Course, error) {
	return r.rows.list(nil), nil
}

type FakeScheduleRepo struct {
	rows   *table[int64, gym.Schedule]
	nextID atomic.Int64
}

func NewFakeScheduleRepo() *FakeScheduleRepo {
	return &FakeScheduleRepo{rows: newTable[int64, gym.Schedule](lessInt64)}
}

func (r *FakeScheduleRepo) Get(_ context.Context, id int64) (*gym.Schedule, error) {
	return r.rows.get(id)
}

func (r *FakeScheduleRepo) Insert(_ context.Context, s *gym.Schedule) error {
	s.ID = r.nextID.Add(1)
	return r.rows.insert(s.ID, *s)
}

func (r *FakeScheduleRepo) Delete(_ context.Context, id int64) error {
	return r.rows.delete(id)
}

func (r *FakeScheduleRepo) List(_ context.Context) ([]*gym.Schedule, error) {
	return r.rows.list(nil), nil
}

func (r *FakeScheduleRepo) ListByUser(_ context.Context, ssn string) ([]*gym.Schedule, error) {
	return r.rows.list(func(s gym.Schedule) bool { return s.UserID == ssn }), nil
}

type enrollmentKey struct {
	course string
	user   string
}

type FakeEnrollmentRepo struct {
	rows *table[enrollmentKey, gym.Enrollment]
}

func NewFakeEnrollmentRepo() *FakeEnrollmentRepo {
	return &FakeEnrollmentRepo{rows: newTable[enrollmentKey, gym.Enrollment](func(a, b enrollmentKey) bool {
		if a.course != b.course {
			return a.course < b.course
		}
		return a.user < b.user
	})}
}

func (r *FakeEnrollmentRepo) Insert(_ context.Context, e *gym.Enrollment) error {
	return r.rows.insert(enrollmentKey{e.CourseName, e.UserID}, *e)
}

func (r *FakeEnrollmentRepo) Delete(_ context.Context, courseName, userID string) error {
	return r.rows.delete(enrollmentKey{courseName, userID})
}

func (r *FakeEnrollmentRepo) List(_ context.Context) ([]*gym.Enrollment, error) {
	return r.rows.list(nil), nil
}

func (r *FakeEnrollmentRepo) ListByUser(_ context.Context, ssn string) ([]*gym.Enrollment, error) {
	return r.rows.list(func(e gym.Enrollment) bool { return e.UserID == ssn }), nil
}

type FakeFeedbackRepo struct {
	rows   *table[int64, gym.Feedback]
	nextID atomic.Int64
}

func NewFakeFeedbackRepo() *FakeFeedbackRepo {
	return &FakeFeedbackRepo{rows: newTable[int64, gym.Feedback](lessInt64)}
}

func (r *FakeFeedbackRepo) Get(_ context.Context, id int64) (*gym.Feedback, error) {
	return r.rows.get(id)
}

func (r *FakeFeedbackRepo) Insert(_ context.Context, f *gym.Feedback) error {
	f.ID = r.nextID.Add(1)
	return r.rows.insert(f.ID, *f)
}

func (r *FakeFeedbackRepo) Delete(_ context.Context, id int64) error {
	return r.rows.delete(id)
}

func (r *FakeFeedbackRepo) List(_ context.Context) ([]*gym.Feedback, error) {
	return r.rows.list(nil), nil
}
