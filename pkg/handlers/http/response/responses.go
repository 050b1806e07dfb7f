package response

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type FieldsResponse struct {
	Fields []string `json:"fields"`
}
