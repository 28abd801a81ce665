package gym

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/internal/utils"
	"github.com/jrsteele09/go-gym-server/users"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	maxNameLength     = 20
	maxCapacity       = 99
	maxCommentLength  = 200
	maxFeedbackScore  = 9.9
	maxCourseNameSize = 50
)

// Service performs the gym CRUD operations and enforces the references
// between records before anything is written.
type Service struct {
	repos Repos
	users users.UserRepo
}

func NewService(repos Repos, userRepo users.UserRepo) (*Service, error) {
	if repos.Instructors == nil {
		return nil, errors.New("[NewService] Instructors repo is required")
	}
	if repos.Rooms == nil {
		return nil, errors.New("[NewService] Rooms repo is required")
	}
	if repos.Courses == nil {
		return nil, errors.New("[NewService] Courses repo is required")
	}
	if repos.Schedules == nil {
		return nil, errors.New("[NewService] Schedules repo is required")
	}
	if repos.Enrollments == nil {
		return nil, errors.New("[NewService] Enrollments repo is required")
	}
	if repos.Feedback == nil {
		return nil, errors.New("[NewService] Feedback repo is required")
	}
	if userRepo == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	return &Service{repos: repos, users: userRepo}, nil
}

// reference turns a missing referenced record into ErrInvalidReference.
func reference(err error, what string) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidReference, what)
	}
	return err
}

func (s *Service) requireUser(ctx context.Context, ssn string) error {
	_, err := s.users.Get(ctx, ssn)
	return reference(err, "user "+ssn)
}

func (s *Service) requireRoom(ctx context.Context, id int64) error {
	_, err := s.repos.Rooms.Get(ctx, id)
	return reference(err, fmt.Sprintf("room %d", id))
}

func (s *Service) requireCourse(ctx context.Context, name string) error {
	_, err := s.repos.Courses.Get(ctx, name)
	return reference(err, "course "+name)
}

func (s *Service) requireInstructor(ctx context.Context, ssn string) error {
	_, err := s.repos.Instructors.Get(ctx, ssn)
	return reference(err, "instructor "+ssn)
}

func requireName(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validationf("%s is required", field)
	}
	if len(value) > max {
		return apperrors.Validationf("%s is limited to %d characters", field, max)
	}
	return nil
}

// Instructors

func (s *Service) ListInstructors(ctx context.Context) ([]*Instructor, error) {
	return s.repos.Instructors.List(ctx)
}

func (s *Service) GetInstructor(ctx context.Context, ssn string) (*Instructor, error) {
	return s.repos.Instructors.Get(ctx, ssn)
}

func (s *Service) CreateInstructor(ctx context.Context, i *Instructor) error {
	if err := validateInstructor(i); err != nil {
		return err
	}
	return s.repos.Instructors.Insert(ctx, i)
}

func (s *Service) UpdateInstructor(ctx context.Context, ssn string, u InstructorUpdate) (*Instructor, error) {
	i, err := s.repos.Instructors.Get(ctx, ssn)
	if err != nil {
		return nil, err
	}
	utils.Assign(&i.FirstName, u.FirstName)
	utils.Assign(&i.LastName, u.LastName)
	utils.Assign(&i.Phone, u.Phone)
	if err := validateInstructor(i); err != nil {
		return nil, err
	}
	if err := s.repos.Instructors.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) DeleteInstructor(ctx context.Context, ssn string) error {
	return s.repos.Instructors.Delete(ctx, ssn)
}

func validateInstructor(i *Instructor) error {
	if err := requireName("SSN", i.SSN, maxNameLength); err != nil {
		return err
	}
	if err := requireName("firstName", i.FirstName, maxNameLength); err != nil {
		return err
	}
	if err := requireName("lastName", i.LastName, maxNameLength); err != nil {
		return err
	}
	if i.Phone != "" {
		return users.ValidatePhone(i.Phone)
	}
	return nil
}

// Rooms

func (s *Service) ListRooms(ctx context.Context) ([]*Room, error) {
	return s.repos.Rooms.List(ctx)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*Room, error) {
	return s.repos.Rooms.Get(ctx, id)
}

func (s *Service) CreateRoom(ctx context.Context, r *Room) error {
	if err := requireName("roomName", r.RoomName, maxNameLength); err != nil {
		return err
	}
	return s.repos.Rooms.Insert(ctx, r)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, u RoomUpdate) (*Room, error) {
	r, err := s.repos.Rooms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.Assign(&r.RoomName, u.RoomName)
	if err := requireName("roomName", r.RoomName, maxNameLength); err != nil {
		return nil, err
	}
	if err := s.repos.Rooms.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	return s.repos.Rooms.Delete(ctx, id)
}

// Courses

func (s *Service) ListCourses(ctx context.Context) ([]*Course, error) {
	return s.repos.Courses.List(ctx)
}

func (s *Service) GetCourse(ctx context.Context, name string) (*Course, error) {
	return s.repos.Courses.Get(ctx, name)
}

func (s *Service) CreateCourse(ctx context.Context, c *Course) error {
	if err := requireName("courseName", c.CourseName, maxCourseNameSize); err != nil {
		return err
	}
	if err := s.validateCourse(ctx, c); err != nil {
		return err
	}
	return s.repos.Courses.Insert(ctx, c)
}

func (s *Service) UpdateCourse(ctx context.Context, name string, u CourseUpdate) (*Course, error) {
	c, err := s.repos.Courses.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	utils.Assign(&c.Capacity, u.Capacity)
	utils.Assign(&c.IsSpecial, u.IsSpecial)
	utils.Assign(&c.InstructorID, u.InstructorID)
	utils.Assign(&c.RoomID, u.RoomID)
	if err := s.validateCourse(ctx, c); err != nil {
		return nil, err
	}
	if err := s.repos.Courses.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCourse(ctx context.Context, name string) error {
	return s.repos.Courses.Delete(ctx, name)
}

func (s *Service) validateCourse(ctx context.Context, c *Course) error {
	if c.Capacity < 0 || c.Capacity > maxCapacity {
		return apperrors.Validationf("capacity must be between 0 and %d", maxCapacity)
	}
	if c.InstructorID != "" {
		if err := s.requireInstructor(ctx, c.InstructorID); err != nil {
			return err
		}
	}
	if c.RoomID != 0 {
		if err := s.requireRoom(ctx, c.RoomID); err != nil {
			return err
		}
	}
	return nil
}

// Schedules

func (s *Service) ListSchedules(ctx context.Context) ([]*Schedule, error) {
	return s.repos.Schedules.List(ctx)
}

func (s *Service) ListUserSchedules(ctx context.Context, ssn string) ([]*Schedule, error) {
	return s.repos.Schedules.ListByUser(ctx, ssn)
}

func (s *Service) GetSchedule(ctx context.Context, id int64) (*Schedule, error) {
	return s.repos.Schedules.Get(ctx, id)
}

// CreateSchedule checks the room, and for class bookings the course and for
// private bookings the user.
func (s *Service) CreateSchedule(ctx context.Context, sc *Schedule) error {
	if !sc.BookingType.Valid() {
		return apperrors.Validationf("bookingType must be one of cleaning, class, private")
	}
	if _, err := time.Parse(dateLayout, sc.Date); err != nil {
		return apperrors.Validationf("scheduleDate must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, sc.Time); err != nil {
		return apperrors.Validationf("scheduleTime must be formatted HH:MM")
	}
	if err := s.requireRoom(ctx, sc.RoomID); err != nil {
		return err
	}

	switch sc.BookingType {
	case BookingClass:
		if sc.CourseName == "" {
			return apperrors.Validationf("courseName is required for class bookings")
		}
		if err := s.requireCourse(ctx, sc.CourseName); err != nil {
			return err
		}
	case BookingPrivate:
		if sc.UserID == "" {
			return apperrors.Validationf("userID is required for private bookings")
		}
	}
	if sc.UserID != "" {
		if err := s.requireUser(ctx, sc.UserID); err != nil {
			return err
		}
	}
	return s.repos.Schedules.Insert(ctx, sc)
}

// BookRoom books a slot on behalf of the caller.
func (s *Service) BookRoom(ctx context.Context, caller *users.User, sc *Schedule) error {
	sc.UserID = caller.SSN
	sc.IsBooked = true
	return s.CreateSchedule(ctx, sc)
}

func (s *Service) DeleteSchedule(ctx context.Context, id int64) error {
	return s.repos.Schedules.Delete(ctx, id)
}

// Enrollments

func (s *Service) ListEnrollments(ctx context.Context) ([]*Enrollment, error) {
	return s.repos.Enrollments.List(ctx)
}

// Enroll adds userID to a course. A repeated enrollment is ErrAlreadyExists.
func (s *Service) Enroll(ctx context.Context, courseName, userID string) (*Enrollment, error) {
	if err := s.requireCourse(ctx, courseName); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	e := &Enrollment{CourseName: courseName, UserID: userID}
	if err := s.repos.Enrollments.Insert(ctx, e); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: already enrolled in %s", apperrors.ErrAlreadyExists, courseName)
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) Unenroll(ctx context.Context, courseName, userID string) error {
	return s.repos.Enrollments.Delete(ctx, courseName, userID)
}

// ListUserCourses returns the courses ssn is enrolled in.
func (s *Service) ListUserCourses(ctx context.Context, ssn string) ([]*Course, error) {
	enrollments, err := s.repos.Enrollments.ListByUser(ctx, ssn)
	if err != nil {
		return nil, err
	}
	courses := make([]*Course, 0, len(enrollments))
	for _, e := range enrollments {
		c, err := s.repos.Courses.Get(ctx, e.CourseName)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// Feedback

func (s *Service) ListFeedback(ctx context.Context) ([]*Feedback, error) {
	return s.repos.Feedback.List(ctx)
}

func (s *Service) GetFeedback(ctx context.Context, id int64) (*Feedback, error) {
	return s.repos.Feedback.Get(ctx, id)
}

func (s *Service) CreateFeedback(ctx context.Context, f *Feedback) error {
	if f.Score < 0 || f.Score > maxFeedbackScore {
		return apperrors.Validationf("score must be between 0 and %.1f", maxFeedbackScore)
	}
	if len(f.Comment) > maxCommentLength {
		return apperrors.Validationf("comment is limited to %d characters", maxCommentLength)
	}
	if err := s.requireRoom(ctx, f.RoomID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, f.UserID); err != nil {
		return err
	}
	if _, err := s.repos.Schedules.Get(ctx, f.ScheduleID); err != nil {
		return reference(err, fmt.Sprintf("schedule %d", f.ScheduleID))
	}
	return s.repos.Feedback.Insert(ctx, f)
}

func (s *Service) DeleteFeedback(ctx context.Context, id int64) error {
	return s.repos.Feedback.Delete(ctx, id)
}
