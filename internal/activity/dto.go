package activity

type AppendDTO struct {
	Action  string                 `json:"action"`
	Details map[string]interface{} `json:"details"`
}

type ListResponse struct {
	Logs  []*Entry `json:"logs"`
	Limit int      `json:"limit"`
}

type AppendResponse struct {
	Accepted bool `json:"accepted"`
}
