package server

import (
	"net/http"

	"github.com/jrsteele09/go-gym-server/auth"
	"github.com/jrsteele09/go-gym-server/gym"
	"github.com/jrsteele09/go-gym-server/users"
)

type loginRequest struct {
	SSN      string `json:"SSN"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		user, err := s.deps.Auth.Register(r.Context(), req)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		token, user, err := s.deps.Auth.Login(r.Context(), req.SSN, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
	}
}

// LogoutHandler revokes the presented token. It does not go through
// RequireAuth so that a repeated logout reports the token as already revoked.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Auth.LogoutHeader(r.Context(), r.Header.Get("Authorization")); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "logged out")
	}
}

type profileResponse struct {
	User   *users.User    `json:"user"`
	Phones []*users.Phone `json:"phones"`
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := caller(r)
		phones, err := s.deps.Phones.ListByUser(r.Context(), user.SSN)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, profileResponse{User: user, Phones: phones})
	}
}

func (s *Server) MyCoursesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := s.deps.Gym.ListUserCourses(r.Context(), caller(r).SSN)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, courses)
	}
}

func (s *Server) MyBookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := s.deps.Gym.ListUserSchedules(r.Context(), caller(r).SSN)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}

type enrollCourseRequest struct {
	CourseName string `json:"courseName"`
}

func (s *Server) EnrollCourseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enrollCourseRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		enrollment, err := s.deps.Gym.Enroll(r.Context(), req.CourseName, caller(r).SSN)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, enrollment)
	}
}

type bookRoomRequest struct {
	RoomID      int64           `json:"room_id"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	BookingType gym.BookingType `json:"booking_type"`
	CourseName  string          `json:"courseName"`
}

func (s *Server) BookRoomHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookRoomRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		schedule := &gym.Schedule{
			RoomID:      req.RoomID,
			Date:        req.Date,
			Time:        req.Time,
			BookingType: req.BookingType,
			CourseName:  req.CourseName,
		}
		if err := s.deps.Gym.BookRoom(r.Context(), caller(r), schedule); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, schedule)
	}
}
