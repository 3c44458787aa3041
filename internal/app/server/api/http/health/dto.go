package health

// Input входные данные для /status
type Input struct{}

// Output ответ /status
type Output struct {
	Body Response
}

// Response тело ответа /status
type Response struct {
	Status  string `json:"status" example:"ok" doc:"Health status of the service"`
	Version string `json:"version" example:"1.0.0" doc:"Build version of the service"`
}
