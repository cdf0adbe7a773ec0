package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"gorm.io/datatypes"
)

// Event records one successful draw. Events are append-only; the daily quota
// is derived from them.
type Event struct {
	ID           snowflake.ID                               `json:"id" gorm:"primaryKey;autoIncrement:false;index:ix_draw_events_user_drawn,priority:3,sort:desc"`
	UserID       snowflake.ID                               `json:"user_id" gorm:"column:user_id;not null;index:ix_draw_events_user_drawn,priority:1"`
	FoodID       snowflake.ID                               `json:"food_id" gorm:"column:food_id;not null;index:ix_draw_events_food_id"`
	FoodSnapshot datatypes.JSONType[catalogdomain.Snapshot] `json:"food" gorm:"column:food_snapshot;not null"`
	DrawnAt      time.Time                                  `json:"drawn_at" gorm:"column:drawn_at;not null;index:ix_draw_events_user_drawn,priority:2,sort:desc"`
}

func (Event) TableName() string { return "draw_events" }

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeQuotaExhausted Outcome = "quota_exhausted"
	OutcomeNoEligibleItem Outcome = "no_eligible_item"
)

// Message is the user-facing text for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeSuccess:
		return "抽取成功！今天就吃这个吧~"
	case OutcomeQuotaExhausted:
		return "今日抽取次数已用完，明天再来吧！"
	case OutcomeNoEligibleItem:
		return "暂无符合条件的美食数据，请调整筛选条件"
	default:
		return ""
	}
}

// Result is returned for every business outcome. Event and Food are set only
// on success.
type Result struct {
	Outcome        Outcome
	Event          *Event
	Food           *catalogdomain.Food
	RemainingQuota int
	Message        string
}

func NewResult(outcome Outcome, remaining int) *Result {
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Outcome:        outcome,
		RemainingQuota: remaining,
		Message:        outcome.Message(),
	}
}

// Response is the API shape of a draw result.
type Response struct {
	Outcome        Outcome                 `json:"outcome"`
	Success        bool                    `json:"success"`
	Message        string                  `json:"message"`
	EventID        string                  `json:"event_id,omitempty"`
	Food           *catalogdomain.Response `json:"food"`
	RemainingTimes int                     `json:"remaining_times"`
	DrawnAt        *time.Time              `json:"drawn_at,omitempty"`
}

func (r *Result) Response() Response {
	resp := Response{
		Outcome:        r.Outcome,
		Success:        r.Outcome == OutcomeSuccess,
		Message:        r.Message,
		RemainingTimes: r.RemainingQuota,
	}
	if r.Event != nil {
		snapshot := r.Event.FoodSnapshot.Data()
		food := snapshot.Response()
		drawnAt := r.Event.DrawnAt
		resp.EventID = r.Event.ID.String()
		resp.Food = &food
		resp.DrawnAt = &drawnAt
	}
	return resp
}
