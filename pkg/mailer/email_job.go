package mailer

// Job types carried over the email queue. The API publishes these and the
// worker renders and sends them.
const (
	JobWelcome     = "welcome"
	JobPlanSummary = "plan_summary"
)

// EmailJob is the queue message. Fields beyond Type/To/Name apply only to
// some job types and are left zero otherwise.
type EmailJob struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Name string `json:"name"`

	// welcome
	LoginIP       string `json:"login_ip,omitempty"`
	LoginLocation string `json:"login_location,omitempty"`
	LoginTime     string `json:"login_time,omitempty"`

	// plan_summary
	WeeklyFocus string   `json:"weekly_focus,omitempty"`
	DailyTips   []string `json:"daily_tips,omitempty"`
	StepCount   int      `json:"step_count,omitempty"`
}
