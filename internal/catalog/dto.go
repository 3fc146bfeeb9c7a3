package catalog

type GroupedResponse struct {
	Kind   Kind         `json:"kind"`
	Brand  string       `json:"brand"`
	Groups []ModelGroup `json:"groups"`
}
