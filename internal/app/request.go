package app

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"trip_planner/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	maxDays    = 30
)

var validate = validator.New()

// PlanRequest is the input of PlanItinerary. Either Destination or Location
// must be set; either EndDate or Days.
type PlanRequest struct {
	TripID           string             `json:"trip_id,omitempty"`
	UserID           string             `json:"user_id,omitempty"`
	Destination      string             `json:"destination" validate:"required_without=Location"`
	Location         *domain.Coordinate `json:"location,omitempty"`
	StartDate        string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string             `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Days             int                `json:"days,omitempty" validate:"omitempty,gte=1,lte=30"`
	Travelers        int                `json:"travelers" validate:"gte=1"`
	Budget           float64            `json:"budget" validate:"gte=0"`
	Currency         string             `json:"currency" validate:"required,len=3,alpha"`
	Pace             domain.Pace        `json:"pace" validate:"omitempty,oneof=relaxed moderate fast"`
	Interests        []string           `json:"interests"`
	MustSee          []string           `json:"must_see,omitempty"`
	Dietary          []string           `json:"dietary,omitempty"`
	ActivitiesPerDay int                `json:"activities_per_day,omitempty" validate:"gte=0"`
}

// normalize fills defaults and validates. It returns the trip length in days.
func (r *PlanRequest) normalize(now time.Time) (int, error) {
	r.Destination = strings.TrimSpace(r.Destination)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Travelers == 0 {
		r.Travelers = 1
	}
	if r.Pace == "" {
		r.Pace = domain.PaceModerate
	}
	if r.StartDate == "" {
		r.StartDate = now.UTC().Format(dateLayout)
	}

	if err := validate.Struct(r); err != nil {
		return 0, invalid(err)
	}
	if r.Location != nil && (math.Abs(r.Location.Lat) > 90 || math.Abs(r.Location.Lng) > 180) {
		return 0, fmt.Errorf("%w: location out of range", domain.ErrInvalidRequest)
	}

	start, _ := time.Parse(dateLayout, r.StartDate)
	if r.EndDate == "" && r.Days == 0 {
		return 0, fmt.Errorf("%w: end_date or days is required", domain.ErrInvalidRequest)
	}
	if r.EndDate == "" {
		r.EndDate = start.AddDate(0, 0, r.Days).Format(dateLayout)
	}
	end, _ := time.Parse(dateLayout, r.EndDate)
	if !end.After(start) {
		return 0, fmt.Errorf("%w: end_date must be after start_date", domain.ErrInvalidRequest)
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days > maxDays {
		return 0, fmt.Errorf("%w: trip longer than %d days", domain.ErrInvalidRequest, maxDays)
	}
	r.Days = days
	return days, nil
}

func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
