package httpapi

type textRequest struct {
	Text string `json:"text"`
}

type summaryResponse struct {
	Message string `json:"message"`
	Summary string `json:"summary"`
}

type ttsResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}

type extractResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

type processResponse struct {
	FilePath string            `json:"filePath,omitempty"`
	Summary  string            `json:"summary,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

type docxRequest struct {
	Summary string `json:"summary"`
	Title   string `json:"title"`
}

type errorResponse struct {
	Error string `json:"error"`
}
