package postgres

import (
	"context"
	"database/sql"

	"github.com/jrsteele09/go-gym-server/gym"
	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
)

var (
	_ gym.InstructorRepo = (*InstructorRepo)(nil)
	_ gym.RoomRepo       = (*RoomRepo)(nil)
	_ gym.CourseRepo     = (*CourseRepo)(nil)
	_ gym.ScheduleRepo   = (*ScheduleRepo)(nil)
	_ gym.EnrollmentRepo = (*EnrollmentRepo)(nil)
	_ gym.FeedbackRepo   = (*FeedbackRepo)(nil)
)

// NewGymRepos returns every gym repository backed by db.
func NewGymRepos(db *sql.DB) gym.Repos {
	return gym.Repos{
		Instructors: &InstructorRepo{db: db},
		Rooms:       &RoomRepo{db: db},
		Courses:     &CourseRepo{db: db},
		Schedules:   &ScheduleRepo{db: db},
		Enrollments: &EnrollmentRepo{db: db},
		Feedback:    &FeedbackRepo{db: db},
	}
}

type InstructorRepo struct {
	db *sql.DB
}

func scanInstructor(row scanner) (*gym.Instructor, error) {
	var i gym.Instructor
	if err := row.Scan(&i.SSN, &i.FirstName, &i.LastName, &i.Phone); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InstructorRepo) Get(ctx context.Context, ssn string) (*gym.Instructor, error) {
	row := r.db.QueryRowContext(ctx, `SELECT ssn, first_name, last_name, phone FROM instructors WHERE ssn = $1`, ssn)
	i, err := scanInstructor(row)
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[InstructorRepo Get] %s", ssn)
	}
	return i, nil
}

func (r *InstructorRepo) Insert(ctx context.Context, i *gym.Instructor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO instructors (ssn, first_name, last_name, phone) VALUES ($1, $2, $3, $4)`,
		i.SSN, i.FirstName, i.LastName, i.Phone,
	)
	return apperrors.Wrapf(writeErr(err), "[InstructorRepo Insert] %s", i.SSN)
}

func (r *InstructorRepo) Update(ctx context.Context, i *gym.Instructor) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE instructors SET first_name = $2, last_name = $3, phone = $4 WHERE ssn = $1`,
		i.SSN, i.FirstName, i.LastName, i.Phone,
	)
	if err != nil {
		return apperrors.Wrapf(writeErr(err), "[InstructorRepo Update] %s", i.SSN)
	}
	return apperrors.Wrapf(expectRow(result), "[InstructorRepo Update] %s", i.SSN)
}

func (r *InstructorRepo) Delete(ctx context.Context, ssn string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM instructors WHERE ssn = $1`, ssn)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[InstructorRepo Delete] %s", ssn)
	}
	return apperrors.Wrapf(expectRow(result), "[InstructorRepo Delete] %s", ssn)
}

func (r *InstructorRepo) List(ctx context.Context) ([]*gym.Instructor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ssn, first_name, last_name, phone FROM instructors ORDER BY ssn`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[InstructorRepo List]")
	}
	return collect(rows, scanInstructor)
}

type RoomRepo struct {
	db *sql.DB
}

func scanRoom(row scanner) (*gym.Room, error) {
	var rm gym.Room
	if err := row.Scan(&rm.ID, &rm.RoomName); err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *RoomRepo) Get(ctx context.Context, id int64) (*gym.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, `SELECT id, room_name FROM rooms WHERE id = $1`, id))
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[RoomRepo Get] %d", id)
	}
	return rm, nil
}

func (r *RoomRepo) Insert(ctx context.Context, rm *gym.Room) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO rooms (room_name) VALUES ($1) RETURNING id`, rm.RoomName).Scan(&rm.ID)
	return apperrors.Wrapf(writeErr(err), "[RoomRepo Insert] %s", rm.RoomName)
}

func (r *RoomRepo) Update(ctx context.Context, rm *gym.Room) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rooms SET room_name = $2 WHERE id = $1`, rm.ID, rm.RoomName)
	if err != nil {
		return apperrors.Wrapf(writeErr(err), "[RoomRepo Update] %d", rm.ID)
	}
	return apperrors.Wrapf(expectRow(result), "[RoomRepo Update] %d", rm.ID)
}

func (r *RoomRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[RoomRepo Delete] %d", id)
	}
	return apperrors.Wrapf(expectRow(result), "[RoomRepo Delete] %d", id)
}

func (r *RoomRepo) List(ctx context.Context) ([]*gym.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, room_name FROM rooms ORDER BY id`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[RoomRepo List]")
	}
	return collect(rows, scanRoom)
}

type CourseRepo struct {
	db *sql.DB
}

const courseColumns = `course_name, capacity, is_special, instructor_ssn, room_id`

func scanCourse(row scanner) (*gym.Course, error) {
	var (
		c          gym.Course
		instructor sql.NullString
		room       sql.NullInt64
	)
	if err := row.Scan(&c.CourseName, &c.Capacity, &c.IsSpecial, &instructor, &room); err != nil {
		return nil, err
	}
	c.InstructorID = instructor.String
	c.RoomID = room.Int64
	return &c, nil
}

func (r *CourseRepo) Get(ctx context.Context, name string) (*gym.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE course_name = $1`, name))
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[CourseRepo Get] %s", name)
	}
	return c, nil
}

func (r *CourseRepo) Insert(ctx context.Context, c *gym.Course) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (`+courseColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		c.CourseName, c.Capacity, c.IsSpecial, nullString(c.InstructorID), nullInt64(c.RoomID),
	)
	return apperrors.Wrapf(writeErr(err), "[CourseRepo Insert] %s", c.CourseName)
}

func (r *CourseRepo) Update(ctx context.Context, c *gym.Course) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE courses SET capacity = $2, is_special = $3, instructor_ssn = $4, room_id = $5 WHERE course_name = $1`,
		c.CourseName, c.Capacity, c.IsSpecial, nullString(c.InstructorID), nullInt64(c.RoomID),
	)
	if err != nil {
		return apperrors.Wrapf(writeErr(err), "[CourseRepo Update] %s", c.CourseName)
	}
	return apperrors.Wrapf(expectRow(result), "[CourseRepo Update] %s", c.CourseName)
}

func (r *CourseRepo) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE course_name = $1`, name)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[CourseRepo Delete] %s", name)
	}
	return apperrors.Wrapf(expectRow(result), "[CourseRepo Delete] %s", name)
}

func (r *CourseRepo) List(ctx context.Context) ([]*gym.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY course_name`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[CourseRepo List]")
	}
	return collect(rows, scanCourse)
}

type ScheduleRepo struct {
	db *sql.DB
}

// Dates and times travel as text so the API sees exactly YYYY-MM-DD and HH:MM.
const scheduleSelect = `SELECT id, room_id, to_char(schedule_date, 'YYYY-MM-DD'), to_char(schedule_time, 'HH24:MI'),
	booking_type, user_ssn, course_name, is_booked FROM room_schedules`

func scanSchedule(row scanner) (*gym.Schedule, error) {
	var (
		s      gym.Schedule
		kind   string
		user   sql.NullString
		course sql.NullString
	)
	if err := row.Scan(&s.ID, &s.RoomID, &s.Date, &s.Time, &kind, &user, &course, &s.IsBooked); err != nil {
		return nil, err
	}
	s.BookingType = gym.BookingType(kind)
	s.UserID = user.String
	s.CourseName = course.String
	return &s, nil
}

func (r *ScheduleRepo) Get(ctx context.Context, id int64) (*gym.Schedule, error) {
	s, err := scanSchedule(r.db.QueryRowContext(ctx, scheduleSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[ScheduleRepo Get] %d", id)
	}
	return s, nil
}

func (r *ScheduleRepo) Insert(ctx context.Context, s *gym.Schedule) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO room_schedules (room_id, schedule_date, schedule_time, booking_type, user_ssn, course_name, is_booked)
		 VALUES ($1, $2::date, $3::time, $4, $5, $6, $7) RETURNING id`,
		s.RoomID, s.Date, s.Time, string(s.BookingType), nullString(s.UserID), nullString(s.CourseName), s.IsBooked,
	).Scan(&s.ID)
	return apperrors.Wrapf(writeErr(err), "[ScheduleRepo Insert] room %d", s.RoomID)
}

func (r *ScheduleRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM room_schedules WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[ScheduleRepo Delete] %d", id)
	}
	return apperrors.Wrapf(expectRow(result), "[ScheduleRepo Delete] %d", id)
}

func (r *ScheduleRepo) List(ctx context.Context) ([]*gym.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, scheduleSelect+` ORDER BY schedule_date, schedule_time, id`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[ScheduleRepo List]")
	}
	return collect(rows, scanSchedule)
}

func (r *ScheduleRepo) ListByUser(ctx context.Context, ssn string) ([]*gym.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, scheduleSelect+` WHERE user_ssn = $1 ORDER BY schedule_date, schedule_time, id`, ssn)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[ScheduleRepo ListByUser] %s", ssn)
	}
	return collect(rows, scanSchedule)
}

type EnrollmentRepo struct {
	db *sql.DB
}

func scanEnrollment(row scanner) (*gym.Enrollment, error) {
	var e gym.Enrollment
	if err := row.Scan(&e.CourseName, &e.UserID); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepo) Insert(ctx context.Context, e *gym.Enrollment) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO user_courses (course_name, user_ssn) VALUES ($1, $2)`, e.CourseName, e.UserID)
	return apperrors.Wrapf(writeErr(err), "[EnrollmentRepo Insert] %s/%s", e.CourseName, e.UserID)
}

func (r *EnrollmentRepo) Delete(ctx context.Context, courseName, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_courses WHERE course_name = $1 AND user_ssn = $2`, courseName, userID)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[EnrollmentRepo Delete] %s/%s", courseName, userID)
	}
	return apperrors.Wrapf(expectRow(result), "[EnrollmentRepo Delete] %s/%s", courseName, userID)
}

func (r *EnrollmentRepo) List(ctx context.Context) ([]*gym.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT course_name, user_ssn FROM user_courses ORDER BY course_name, user_ssn`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[EnrollmentRepo List]")
	}
	return collect(rows, scanEnrollment)
}

func (r *EnrollmentRepo) ListByUser(ctx context.Context, ssn string) ([]*gym.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT course_name, user_ssn FROM user_courses WHERE user_ssn = $1 ORDER BY course_name`, ssn)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[EnrollmentRepo ListByUser] %s", ssn)
	}
	return collect(rows, scanEnrollment)
}

type FeedbackRepo struct {
	db *sql.DB
}

const feedbackColumns = `id, room_id, user_ssn, schedule_id, score, comment`

func scanFeedback(row scanner) (*gym.Feedback, error) {
	var f gym.Feedback
	if err := row.Scan(&f.ID, &f.RoomID, &f.UserID, &f.ScheduleID, &f.Score, &f.Comment); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepo) Get(ctx context.Context, id int64) (*gym.Feedback, error) {
	f, err := scanFeedback(r.db.QueryRowContext(ctx, `SELECT `+feedbackColumns+` FROM feedbacks WHERE id = $1`, id))
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[FeedbackRepo Get] %d", id)
	}
	return f, nil
}

func (r *FeedbackRepo) Insert(ctx context.Context, f *gym.Feedback) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO feedbacks (room_id, user_ssn, schedule_id, score, comment) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		f.RoomID, f.UserID, f.ScheduleID, f.Score, f.Comment,
	).Scan(&f.ID)
	return apperrors.Wrapf(writeErr(err), "[FeedbackRepo Insert] schedule %d", f.ScheduleID)
}

func (r *FeedbackRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[FeedbackRepo Delete] %d", id)
	}
	return apperrors.Wrapf(expectRow(result), "[FeedbackRepo Delete] %d", id)
}

func (r *FeedbackRepo) List(ctx context.Context) ([]*gym.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+feedbackColumns+` FROM feedbacks ORDER BY id`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[FeedbackRepo List]")
	}
	return collect(rows, scanFeedback)
}
