// Package gym holds the facility side of the system: instructors, rooms,
// courses, room schedules (bookings), course enrollments and feedback.
package gym

type Instructor struct {
	SSN       string `json:"SSN"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

type InstructorUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

type Room struct {
	ID       int64  `json:"ID"`
	RoomName string `json:"roomName"`
}

type RoomUpdate struct {
	RoomName *string `json:"roomName"`
}

// Course references an instructor and a room; both are optional.
type Course struct {
	CourseName   string `json:"courseName"`
	Capacity     int    `json:"capacity"`
	IsSpecial    bool   `json:"isSpecial"`
	InstructorID string `json:"InstructorID,omitempty"`
	RoomID       int64  `json:"roomId,omitempty"`
}

type CourseUpdate struct {
	Capacity     *int    `json:"capacity"`
	IsSpecial    *bool   `json:"isSpecial"`
	InstructorID *string `json:"InstructorID"`
	RoomID       *int64  `json:"roomId"`
}

type BookingType string

const (
	BookingCleaning BookingType = "cleaning"
	BookingClass    BookingType = "class"
	BookingPrivate  BookingType = "private"
)

func (b BookingType) Valid() bool {
	switch b {
	case BookingCleaning, BookingClass, BookingPrivate:
		return true
	}
	return false
}

// Schedule is a booked slot in a room. Slots are not checked for overlap.
type Schedule struct {
	ID          int64       `json:"scheduleID"`
	RoomID      int64       `json:"roomId"`
	Date        string      `json:"scheduleDate"` // YYYY-MM-DD
	Time        string      `json:"scheduleTime"` // HH:MM
	BookingType BookingType `json:"bookingType"`
	UserID      string      `json:"userID,omitempty"`
	CourseName  string      `json:"courseName,omitempty"`
	IsBooked    bool        `json:"isBooked"`
}

type Enrollment struct {
	CourseName string `json:"courseName"`
	UserID     string `json:"userID"`
}

type Feedback struct {
	ID         int64   `json:"feedBackNo"`
	RoomID     int64   `json:"roomId"`
	UserID     string  `json:"userID"`
	ScheduleID int64   `json:"scheduleID"`
	Score      float64 `json:"score"`
	Comment    string  `json:"comment,omitempty"`
}
