package v1

// FilterRequest carries the user-selected filter for observation queries.
// It is decoded from query parameters by the HTTP layer and validated with
// go-playground/validator before being turned into domain.FilterCriteria.
type FilterRequest struct {
	Regions []string `json:"regions" validate:"dive,min=1,max=64"`
	From    string   `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string   `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Metric  string   `json:"metric" validate:"omitempty,min=1,max=64"`
}

// ExportRequest extends FilterRequest with an output format selection.
type ExportRequest struct {
	FilterRequest
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// RefreshResponse is returned by POST /api/operations/refresh.
type RefreshResponse struct {
	JobID     string `json:"job_id"`
	Rows      int    `json:"rows"`
	Regions   int    `json:"regions"`
	FetchedAt string `json:"fetched_at"`
}
