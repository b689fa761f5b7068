package models

type SessionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UploadResponse struct {
	ID           string       `json:"id"`
	Filename     string       `json:"filename"`
	OriginalName string       `json:"original_name"`
	Kind         DocumentKind `json:"kind"`
	Position     int          `json:"position"`
}

type JobStatusResponse struct {
	HasJobDescription bool `json:"has_job_description"`
	JobLength         int  `json:"job_length"`
}

type ResultResponse struct {
	ID           string      `json:"id"`
	Status       string      `json:"status"`
	JobProfile   *JobProfile `json:"job_profile,omitempty"`
	Candidates   []Candidate `json:"candidates,omitempty"`
	ErrorMessage *string     `json:"error_message,omitempty"`
}
