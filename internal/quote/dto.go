package quote

type SummaryDTO struct {
	Items []Line `json:"items"`
}
