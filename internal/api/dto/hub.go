package dto

type HubResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ListHubsResponse struct {
	Hubs []HubResponse `json:"hubs"`
}
