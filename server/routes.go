package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware(s.LoginRateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// CALLER
	s.RegisterRouteHandler("GET "+RouteMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteMeCourses, ChainMiddleware(s.MyCoursesHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteMeBookings, ChainMiddleware(s.MyBookingsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteAPIEnrollCourse, ChainMiddleware(s.EnrollCourseHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteAPIBookRoom, ChainMiddleware(s.BookRoomHandler(), s.APIMiddleware(s.RequireAuth())...))

	// MEMBERSHIPS
	s.RegisterRouteHandler("GET "+RouteMemberships, ChainMiddleware(s.ListMembershipsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMembership, ChainMiddleware(s.GetMembershipHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteMemberships, ChainMiddleware(s.CreateMembershipHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteMembership, ChainMiddleware(s.UpdateMembershipHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteMembership, ChainMiddleware(s.DeleteMembershipHandler(), s.adminMiddleware()...))

	// USERS & PHONES
	s.RegisterRouteHandler("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteUser, ChainMiddleware(s.GetUserHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteUser, ChainMiddleware(s.UpdateUserHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteUser, ChainMiddleware(s.DeleteUserHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("GET "+RoutePhones, ChainMiddleware(s.ListPhonesHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("POST "+RoutePhones, ChainMiddleware(s.CreatePhoneHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RoutePhone, ChainMiddleware(s.GetPhoneHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RoutePhone, ChainMiddleware(s.DeletePhoneHandler(), s.adminMiddleware()...))

	// INSTRUCTORS
	s.RegisterRouteHandler("GET "+RouteInstructors, ChainMiddleware(s.ListInstructorsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteInstructor, ChainMiddleware(s.GetInstructorHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteInstructors, ChainMiddleware(s.CreateInstructorHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteInstructor, ChainMiddleware(s.UpdateInstructorHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteInstructor, ChainMiddleware(s.DeleteInstructorHandler(), s.adminMiddleware()...))

	// ROOMS
	s.RegisterRouteHandler("GET "+RouteRooms, ChainMiddleware(s.ListRoomsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteRoom, ChainMiddleware(s.GetRoomHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRooms, ChainMiddleware(s.CreateRoomHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteRoom, ChainMiddleware(s.UpdateRoomHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteRoom, ChainMiddleware(s.DeleteRoomHandler(), s.adminMiddleware()...))

	// COURSES
	s.RegisterRouteHandler("GET "+RouteCourses, ChainMiddleware(s.ListCoursesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCourse, ChainMiddleware(s.GetCourseHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCourses, ChainMiddleware(s.CreateCourseHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteCourse, ChainMiddleware(s.UpdateCourseHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteCourse, ChainMiddleware(s.DeleteCourseHandler(), s.adminMiddleware()...))

	// ROOM SCHEDULES
	s.RegisterRouteHandler("GET "+RouteRoomSchedules, ChainMiddleware(s.ListSchedulesHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRoomSchedules, ChainMiddleware(s.CreateScheduleHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteRoomSchedule, ChainMiddleware(s.GetScheduleHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+RouteRoomSchedule, ChainMiddleware(s.DeleteScheduleHandler(), s.APIMiddleware(s.RequireAuth())...))

	// ENROLLMENTS
	s.RegisterRouteHandler("GET "+RouteUserCourses, ChainMiddleware(s.ListEnrollmentsHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteUserCourses, ChainMiddleware(s.CreateEnrollmentHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+RouteUserCourse, ChainMiddleware(s.DeleteEnrollmentHandler(), s.APIMiddleware(s.RequireAuth())...))

	// FEEDBACK
	s.RegisterRouteHandler("GET "+RouteFeedbacks, ChainMiddleware(s.ListFeedbackHandler(), s.adminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteFeedbacks, ChainMiddleware(s.CreateFeedbackHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteFeedback, ChainMiddleware(s.GetFeedbackHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+RouteFeedback, ChainMiddleware(s.DeleteFeedbackHandler(), s.adminMiddleware()...))

	// SYSTEM
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	if s.deps.Metrics != nil {
		s.RegisterRouteFunc("GET "+RouteMetrics, s.deps.Metrics.ServeHTTP)
	}

	// CORS preflight for every path
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))
}

// adminMiddleware is the API chain for routes restricted to administrators.
func (s *Server) adminMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return s.APIMiddleware(s.RequireAdmin())
}
