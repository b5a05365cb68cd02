package http

import "github.com/wedding-seating/go-seating-backend/internal/seating/domain"

// putProjectReq is the save payload. Pointer/nil checks stand in for the
// original's shape validation: guests and layouts must be present arrays and
// activeLayoutId a string (an empty string passes, absent or null does not).
type putProjectReq struct {
	Guests         []domain.Guest  `json:"guests"`
	Layouts        []domain.Layout `json:"layouts"`
	ActiveLayoutID *string         `json:"activeLayoutId"`
}

func (r *putProjectReq) valid() bool {
	return r.Guests != nil && r.Layouts != nil && r.ActiveLayoutID != nil
}

func (r *putProjectReq) toProject() domain.Project {
	return domain.Project{
		Guests:         r.Guests,
		Layouts:        r.Layouts,
		ActiveLayoutID: *r.ActiveLayoutID,
	}
}
