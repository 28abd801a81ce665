package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthRegister = "/auth/register"
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"

	// Caller Routes
	RouteMe         = "/me"
	RouteMeCourses  = "/me/courses"
	RouteMeBookings = "/me/bookings"

	// Member actions
	RouteAPIEnrollCourse = "/api/enroll_course"
	RouteAPIBookRoom     = "/api/book_room"

	// Resource Routes
	RouteMemberships   = "/memberships"
	RouteMembership    = "/memberships/{sign}"
	RouteUsers         = "/users"
	RouteUser          = "/users/{ssn}"
	RoutePhones        = "/phones"
	RoutePhone         = "/phones/{phone}"
	RouteInstructors   = "/instructors"
	RouteInstructor    = "/instructors/{ssn}"
	RouteRooms         = "/rooms"
	RouteRoom          = "/rooms/{id}"
	RouteCourses       = "/courses"
	RouteCourse        = "/courses/{name}"
	RouteRoomSchedules = "/roomschedules"
	RouteRoomSchedule  = "/roomschedules/{id}"
	RouteUserCourses   = "/user_courses"
	RouteUserCourse    = "/user_courses/{course}/{user}"
	RouteFeedbacks     = "/feedbacks"
	RouteFeedback      = "/feedbacks/{id}"

	// System Routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
