package gym

import "context"

// All repos return apperrors.ErrNotFound for unknown keys and
// apperrors.ErrAlreadyExists for duplicate natural keys. Inserts into
// auto-numbered tables assign the new ID to the passed value.

type InstructorRepo interface {
	Get(ctx context.Context, ssn string) (*Instructor, error)
	Insert(ctx context.Context, i *Instructor) error
	Update(ctx context.Context, i *Instructor) error
	Delete(ctx context.Context, ssn string) error
	List(ctx context.Context) ([]*Instructor, error)
}

type RoomRepo interface {
	Get(ctx context.Context, id int64) (*Room, error)
	Insert(ctx context.Context, r *Room) error
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Room, error)
}

type CourseRepo interface {
	Get(ctx context.Context, name string) (*Course, error)
	Insert(ctx context.Context, c *Course) error
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]*Course, error)
}

type ScheduleRepo interface {
	Get(ctx context.Context, id int64) (*Schedule, error)
	Insert(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Schedule, error)
	ListByUser(ctx context.Context, ssn string) ([]*Schedule, error)
}

type EnrollmentRepo interface {
	Insert(ctx context.Context, e *Enrollment) error
	Delete(ctx context.Context, courseName, userID string) error
	List(ctx context.Context) ([]*Enrollment, error)
	ListByUser(ctx context.Context, ssn string) ([]*Enrollment, error)
}

type FeedbackRepo interface {
	Get(ctx context.Context, id int64) (*Feedback, error)
	Insert(ctx context.Context, f *Feedback) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Feedback, error)
}

// Repos holds all repository dependencies for the Service
type Repos struct {
	Instructors InstructorRepo
	Rooms       RoomRepo
	Courses     CourseRepo
	Schedules   ScheduleRepo
	Enrollments EnrollmentRepo
	Feedback    FeedbackRepo
}
