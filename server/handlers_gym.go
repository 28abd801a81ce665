package server

import (
	"net/http"

	"github.com/jrsteele09/go-gym-server/gym"
)

// INSTRUCTORS

func (s *Server) ListInstructorsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.deps.Gym.ListInstructors(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetInstructorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instructor, err := s.deps.Gym.GetInstructor(r.Context(), r.PathValue("ssn"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, instructor)
	}
}

func (s *Server) CreateInstructorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var instructor gym.Instructor
		if err := decodeJSON(w, r, &instructor); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Gym.CreateInstructor(r.Context(), &instructor); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, instructor)
	}
}

func (s *Server) UpdateInstructorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update gym.InstructorUpdate
		if err := decodeJSON(w, r, &update); err != nil {
			s.writeError(w, r, err)
			return
		}
		instructor, err := s.deps.Gym.UpdateInstructor(r.Context(), r.PathValue("ssn"), update)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, instructor)
	}
}

func (s *Server) DeleteInstructorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Gym.DeleteInstructor(r.Context(), r.PathValue("ssn")); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "instructor deleted")
	}
}

// ROOMS

func (s *Server) ListRoomsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.deps.Gym.ListRooms(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetRoomHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		room, err := s.deps.Gym.GetRoom(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, room)
	}
}

func (s *Server) CreateRoomHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var room gym.Room
		if err := decodeJSON(w, r, &room); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Gym.CreateRoom(r.Context(), &room); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, room)
	}
}

func (s *Server) UpdateRoomHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		var update gym.RoomUpdate
		if err := decodeJSON(w, r, &update); err != nil {
			s.writeError(w, r, err)
			return
		}
		room, err := s.deps.Gym.UpdateRoom(r.Context(), id, update)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, room)
	}
}

func (s *Server) DeleteRoomHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Gym.DeleteRoom(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "room deleted")
	}
}

// COURSES

func (s *Server) ListCoursesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.deps.Gym.ListCourses(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetCourseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		course, err := s.deps.Gym.GetCourse(r.Context(), r.PathValue("name"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, course)
	}
}

func (s *Server) CreateCourseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var course gym.Course
		if err := decodeJSON(w, r, &course); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Gym.CreateCourse(r.Context(), &course); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, course)
	}
}

func (s *Server) UpdateCourseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update gym.CourseUpdate
		if err := decodeJSON(w, r, &update); err != nil {
			s.writeError(w, r, err)
			return
		}
		course, err := s.deps.Gym.UpdateCourse(r.Context(), r.PathValue("name"), update)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, course)
	}
}

func (s *Server) DeleteCourseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Gym.DeleteCourse(r.Context(), r.PathValue("name")); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "course deleted")
	}
}

// ROOM SCHEDULES

func (s *Server) ListSchedulesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.deps.Gym.ListSchedules(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		schedule, err := s.deps.Gym.GetSchedule(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, schedule)
	}
}

func (s *Server) CreateScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var schedule gym.Schedule
		if err := decodeJSON(w, r, &schedule); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Gym.CreateSchedule(r.Context(), &schedule); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, schedule)
	}
}

func (s *Server) DeleteScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Gym.DeleteSchedule(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "schedule deleted")
	}
}

// ENROLLMENTS

func (s *Server) ListEnrollmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.deps.Gym.ListEnrollments(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) CreateEnrollmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gym.Enrollment
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		enrollment, err := s.deps.Gym.Enroll(r.Context(), req.CourseName, req.UserID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, enrollment)
	}
}

func (s *Server) DeleteEnrollmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Gym.Unenroll(r.Context(), r.PathValue("course"), r.PathValue("user")); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "enrollment deleted")
	}
}

// FEEDBACK

func (s *Server) ListFeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.deps.Gym.ListFeedback(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetFeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		feedback, err := s.deps.Gym.GetFeedback(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, feedback)
	}
}

// CreateFeedbackHandler records feedback. The author defaults to the caller.
func (s *Server) CreateFeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var feedback gym.Feedback
		if err := decodeJSON(w, r, &feedback); err != nil {
			s.writeError(w, r, err)
			return
		}
		if feedback.UserID == "" {
			feedback.UserID = caller(r).SSN
		}
		if err := s.deps.Gym.CreateFeedback(r.Context(), &feedback); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, feedback)
	}
}

func (s *Server) DeleteFeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Gym.DeleteFeedback(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "feedback deleted")
	}
}
