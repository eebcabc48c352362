package rateLimit

import (
	"net/http"
	"time"

	resp "staff_portal/internal/lib/api/response"

	httprate "github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

// budget is how many requests one client IP may make per window.
type budget struct {
	requests int
	window   time.Duration
}

var (
	loginBudget         = budget{requests: 10, window: 5 * time.Minute}
	registerBudget      = budget{requests: 5, window: time.Hour}
	verifyBudget        = budget{requests: 10, window: 10 * time.Minute}
	mailBudget          = budget{requests: 3, window: time.Hour}
	resetPasswordBudget = budget{requests: 10, window: 10 * time.Minute}
)

func Login() func(http.Handler) http.Handler {
	return perClient(loginBudget)
}

func Register() func(http.Handler) http.Handler {
	return perClient(registerBudget)
}

func Verify() func(http.Handler) http.Handler {
	return perClient(verifyBudget)
}

// ResendVerificationEmail and ForgotPassword each send mail, so they get the smallest budget.
func ResendVerificationEmail() func(http.Handler) http.Handler {
	return perClient(mailBudget)
}

func ForgotPassword() func(http.Handler) http.Handler {
	return perClient(mailBudget)
}

func ResetPassword() func(http.Handler) http.Handler {
	return perClient(resetPasswordBudget)
}

func perClient(b budget) func(http.Handler) http.Handler {
	return httprate.Limit(b.requests, b.window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(tooManyRequests),
	)
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusTooManyRequests)
	render.JSON(w, r, resp.Error("Too many requests. Please try again later."))
}
