package server

const (
	Blue    = "\033[34m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m"
	Green   = "\033[32m"
	Magenta = "\033[35m"
	Yellow  = "\033[33m"

	ResetColor = "\033[0m"
)

var methodColors = map[string]string{
	"GET":     Green,
	"POST":    Blue,
	"PUT":     Cyan,
	"DELETE":  Yellow,
	"PATCH":   Magenta,
	"OPTIONS": Gray,
}
