package dto

type UnreadCountResponse struct {
	Count int `json:"count"`
}
